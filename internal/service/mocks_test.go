package service_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/repo"
	"github.com/coupdetete/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockUserRepo struct {
	upsert     func(ctx context.Context, u domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	setTier    func(ctx context.Context, id uuid.UUID, tier domain.Tier) error
	listPoints func(ctx context.Context) ([]domain.ActorPoints, error)
}

func (m *mockUserRepo) Upsert(ctx context.Context, u domain.User) (domain.User, error) {
	return m.upsert(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) SetTier(ctx context.Context, id uuid.UUID, tier domain.Tier) error {
	return m.setTier(ctx, id, tier)
}
func (m *mockUserRepo) ListPoints(ctx context.Context) ([]domain.ActorPoints, error) {
	return m.listPoints(ctx)
}

type mockGuestRepo struct {
	create        func(ctx context.Context, g domain.GuestUser) (domain.GuestUser, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.GuestUser, error)
	listPoints    func(ctx context.Context) ([]domain.ActorPoints, error)
	countAbove    func(ctx context.Context, points int) (int, error)
}

func (m *mockGuestRepo) Create(ctx context.Context, g domain.GuestUser) (domain.GuestUser, error) {
	return m.create(ctx, g)
}
func (m *mockGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.GuestUser, error) {
	return m.getByID(ctx, id)
}
func (m *mockGuestRepo) ListPoints(ctx context.Context) ([]domain.ActorPoints, error) {
	return m.listPoints(ctx)
}
func (m *mockGuestRepo) CountAbove(ctx context.Context, points int) (int, error) {
	return m.countAbove(ctx, points)
}

type mockSpinRepo struct {
	record      func(ctx context.Context, s domain.Spin) (domain.Spin, error)
	listRecent  func(ctx context.Context, a domain.Actor, limit int) ([]domain.Spin, error)
	pointsSince func(ctx context.Context, kind domain.ActorKind, since time.Time) ([]domain.ActorPoints, error)
}

func (m *mockSpinRepo) Record(ctx context.Context, s domain.Spin) (domain.Spin, error) {
	return m.record(ctx, s)
}
func (m *mockSpinRepo) ListRecent(ctx context.Context, a domain.Actor, limit int) ([]domain.Spin, error) {
	return m.listRecent(ctx, a, limit)
}
func (m *mockSpinRepo) PointsSince(ctx context.Context, kind domain.ActorKind, since time.Time) ([]domain.ActorPoints, error) {
	return m.pointsSince(ctx, kind, since)
}

type mockPreferenceRepo struct {
	get    func(ctx context.Context, a domain.Actor) (domain.UserPreference, error)
	upsert func(ctx context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error)
}

func (m *mockPreferenceRepo) Get(ctx context.Context, a domain.Actor) (domain.UserPreference, error) {
	return m.get(ctx, a)
}
func (m *mockPreferenceRepo) Upsert(ctx context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error) {
	return m.upsert(ctx, u)
}

type mockSubscriptionRepo struct {
	getByUser         func(ctx context.Context, userID uuid.UUID) (domain.Subscription, error)
	getByCustomer     func(ctx context.Context, customerID string) (domain.Subscription, error)
	getBySubscription func(ctx context.Context, subscriptionID string) (domain.Subscription, error)
	upsert            func(ctx context.Context, s domain.Subscription) (domain.Subscription, error)
}

func (m *mockSubscriptionRepo) GetByUser(ctx context.Context, userID uuid.UUID) (domain.Subscription, error) {
	return m.getByUser(ctx, userID)
}
func (m *mockSubscriptionRepo) GetByCustomer(ctx context.Context, customerID string) (domain.Subscription, error) {
	return m.getByCustomer(ctx, customerID)
}
func (m *mockSubscriptionRepo) GetBySubscription(ctx context.Context, subscriptionID string) (domain.Subscription, error) {
	return m.getBySubscription(ctx, subscriptionID)
}
func (m *mockSubscriptionRepo) Upsert(ctx context.Context, s domain.Subscription) (domain.Subscription, error) {
	return m.upsert(ctx, s)
}

type mockMappingRepo struct {
	listByArchetype  func(ctx context.Context, id domain.ArchetypeID) ([]domain.DestinationMapping, error)
	countByArchetype func(ctx context.Context) (map[domain.ArchetypeID]int, error)
}

func (m *mockMappingRepo) ListByArchetype(ctx context.Context, id domain.ArchetypeID) ([]domain.DestinationMapping, error) {
	return m.listByArchetype(ctx, id)
}
func (m *mockMappingRepo) CountByArchetype(ctx context.Context) (map[domain.ArchetypeID]int, error) {
	return m.countByArchetype(ctx)
}

type mockGateway struct {
	createCustomer        func(ctx context.Context, email string, userID uuid.UUID) (string, error)
	createCheckoutSession func(ctx context.Context, req billing.CheckoutRequest) (billing.CheckoutSession, error)
	getSessionStatus      func(ctx context.Context, sessionID string) (billing.SessionStatus, error)
	createPortalSession   func(ctx context.Context, customerID, returnURL string) (string, error)
	getSubscription       func(ctx context.Context, subscriptionID string) (billing.Snapshot, error)
}

func (m *mockGateway) CreateCustomer(ctx context.Context, email string, userID uuid.UUID) (string, error) {
	return m.createCustomer(ctx, email, userID)
}
func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (billing.CheckoutSession, error) {
	return m.createCheckoutSession(ctx, req)
}
func (m *mockGateway) GetSessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error) {
	return m.getSessionStatus(ctx, sessionID)
}
func (m *mockGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	return m.createPortalSession(ctx, customerID, returnURL)
}
func (m *mockGateway) GetSubscription(ctx context.Context, subscriptionID string) (billing.Snapshot, error) {
	return m.getSubscription(ctx, subscriptionID)
}

type mockCatalog struct {
	all    []domain.Destination
	search func(query string, departure domain.Departure, limit int) []domain.Destination
}

func (m *mockCatalog) All() []domain.Destination { return m.all }
func (m *mockCatalog) Search(query string, departure domain.Departure, limit int) []domain.Destination {
	return m.search(query, departure, limit)
}

// compile-time checks: every mock must satisfy the interface it stands in for.
var (
	_ repo.UserRepo              = (*mockUserRepo)(nil)
	_ repo.GuestRepo             = (*mockGuestRepo)(nil)
	_ repo.SpinRepo              = (*mockSpinRepo)(nil)
	_ repo.PreferenceRepo        = (*mockPreferenceRepo)(nil)
	_ repo.SubscriptionRepo      = (*mockSubscriptionRepo)(nil)
	_ repo.MappingRepo           = (*mockMappingRepo)(nil)
	_ service.PaymentGateway     = (*mockGateway)(nil)
	_ service.DestinationCatalog = (*mockCatalog)(nil)
)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// actorRef returns a pointer to a copy of a.
func actorRef(a domain.Actor) *domain.Actor { return &a }

func noPreference(context.Context, domain.Actor) (domain.UserPreference, error) {
	return domain.UserPreference{}, domain.ErrNotFound
}
