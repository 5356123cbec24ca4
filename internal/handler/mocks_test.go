package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/handler"
	"github.com/coupdetete/backend/internal/middleware"
	"github.com/coupdetete/backend/internal/roll"
	"github.com/coupdetete/backend/internal/service"
)

// Hand-written test doubles for the handler.*Servicer interfaces.
// Set only the method fields your test needs.

type mockQuiz struct {
	questions func() []domain.QuizQuestion
	submit    func(ctx context.Context, actor *domain.Actor, answers map[string]string) (service.QuizResult, error)
}

func (m *mockQuiz) Questions() []domain.QuizQuestion { return m.questions() }
func (m *mockQuiz) Submit(ctx context.Context, actor *domain.Actor, answers map[string]string) (service.QuizResult, error) {
	return m.submit(ctx, actor, answers)
}

type mockRolls struct {
	record func(ctx context.Context, actor *domain.Actor, in roll.SpinInput) (domain.Spin, error)
}

func (m *mockRolls) Record(ctx context.Context, actor *domain.Actor, in roll.SpinInput) (domain.Spin, error) {
	return m.record(ctx, actor, in)
}

type mockLeaderboard struct {
	get func(ctx context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error)
}

func (m *mockLeaderboard) Get(ctx context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error) {
	return m.get(ctx, period, page, actor)
}

type mockDestinations struct {
	personalized func(ctx context.Context, actor *domain.Actor, f roll.BaseFilter) (service.DestinationList, error)
	random       func(ctx context.Context, actor *domain.Actor, f roll.BaseFilter, recent roll.Window) (service.DestinationPick, error)
	search       func(query string, departure domain.Departure, limit int) []domain.Destination
	archetypes   func(ctx context.Context) ([]service.ArchetypeSummary, error)
}

func (m *mockDestinations) Personalized(ctx context.Context, actor *domain.Actor, f roll.BaseFilter) (service.DestinationList, error) {
	return m.personalized(ctx, actor, f)
}
func (m *mockDestinations) Random(ctx context.Context, actor *domain.Actor, f roll.BaseFilter, recent roll.Window) (service.DestinationPick, error) {
	return m.random(ctx, actor, f, recent)
}
func (m *mockDestinations) Search(query string, departure domain.Departure, limit int) []domain.Destination {
	return m.search(query, departure, limit)
}
func (m *mockDestinations) Archetypes(ctx context.Context) ([]service.ArchetypeSummary, error) {
	return m.archetypes(ctx)
}

type mockPreferences struct {
	get func(ctx context.Context, actor domain.Actor) (*service.Preference, error)
	set func(ctx context.Context, actor domain.Actor, archetypeID string, enabled *bool) (*service.Preference, error)
}

func (m *mockPreferences) Get(ctx context.Context, actor domain.Actor) (*service.Preference, error) {
	return m.get(ctx, actor)
}
func (m *mockPreferences) Set(ctx context.Context, actor domain.Actor, archetypeID string, enabled *bool) (*service.Preference, error) {
	return m.set(ctx, actor, archetypeID, enabled)
}

type mockGuests struct {
	create func(ctx context.Context, username string, fingerprint *string) (domain.GuestUser, error)
	get    func(ctx context.Context, id uuid.UUID) (domain.GuestUser, error)
	rank   func(ctx context.Context, id uuid.UUID) (service.GuestRank, error)
}

func (m *mockGuests) Create(ctx context.Context, username string, fingerprint *string) (domain.GuestUser, error) {
	return m.create(ctx, username, fingerprint)
}
func (m *mockGuests) Get(ctx context.Context, id uuid.UUID) (domain.GuestUser, error) {
	return m.get(ctx, id)
}
func (m *mockGuests) Rank(ctx context.Context, id uuid.UUID) (service.GuestRank, error) {
	return m.rank(ctx, id)
}

type mockProfiles struct {
	update func(ctx context.Context, userID uuid.UUID, in service.ProfileUpdate) (domain.User, error)
	stats  func(ctx context.Context, actor *domain.Actor) (domain.UserStats, error)
}

func (m *mockProfiles) Update(ctx context.Context, userID uuid.UUID, in service.ProfileUpdate) (domain.User, error) {
	return m.update(ctx, userID, in)
}
func (m *mockProfiles) Stats(ctx context.Context, actor *domain.Actor) (domain.UserStats, error) {
	return m.stats(ctx, actor)
}

type mockSubscriptions struct {
	checkout      func(ctx context.Context, userID uuid.UUID, embedded bool) (billing.CheckoutSession, error)
	sessionStatus func(ctx context.Context, sessionID string) (billing.SessionStatus, error)
	portal        func(ctx context.Context, userID uuid.UUID) (string, error)
	status        func(ctx context.Context, userID uuid.UUID) (service.SubscriptionStatus, error)
	handleEvent   func(ctx context.Context, ev billing.Event) error
}

func (m *mockSubscriptions) Checkout(ctx context.Context, userID uuid.UUID, embedded bool) (billing.CheckoutSession, error) {
	return m.checkout(ctx, userID, embedded)
}
func (m *mockSubscriptions) SessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error) {
	return m.sessionStatus(ctx, sessionID)
}
func (m *mockSubscriptions) Portal(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.portal(ctx, userID)
}
func (m *mockSubscriptions) Status(ctx context.Context, userID uuid.UUID) (service.SubscriptionStatus, error) {
	return m.status(ctx, userID)
}
func (m *mockSubscriptions) HandleEvent(ctx context.Context, ev billing.Event) error {
	return m.handleEvent(ctx, ev)
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.QuizServicer         = (*mockQuiz)(nil)
	_ handler.RollServicer         = (*mockRolls)(nil)
	_ handler.LeaderboardServicer  = (*mockLeaderboard)(nil)
	_ handler.DestinationServicer  = (*mockDestinations)(nil)
	_ handler.PreferenceServicer   = (*mockPreferences)(nil)
	_ handler.GuestServicer        = (*mockGuests)(nil)
	_ handler.ProfileServicer      = (*mockProfiles)(nil)
	_ handler.SubscriptionServicer = (*mockSubscriptions)(nil)
	_ handler.Pinger               = mockPinger{}
)

// ---- helpers ---------------------------------------------------------------

const (
	testJWTSecret     = "handler-test-secret"
	testWebhookSecret = "whsec_handler_test"
)

// newHTTPHandler wires a Server with the given deps into its chi router,
// the same way main.go does in production. Auth, the roll limiter and the
// logger are filled in when left empty.
func newHTTPHandler(d handler.Deps) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if d.Auth == nil {
		d.Auth = middleware.NewAuthenticator(testJWTSecret)
	}
	if d.RollLimiter == nil {
		d.RollLimiter = newLimiter(600, 100)
	}
	if d.Log == nil {
		d.Log = log
	}
	return handler.NewServer(d).Routes()
}

// newLimiter builds a roll limiter with a discarded log. It panics on invalid
// arguments, which only a broken test can pass.
func newLimiter(perMinute, burst int) *middleware.RateLimiter {
	l, err := middleware.NewRateLimiter(perMinute, burst, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		panic(err)
	}
	return l
}

// userToken signs a bearer token for id with the test secret.
func userToken(t *testing.T, id uuid.UUID) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return s
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do runs one request through h. body may be nil, a string or any value to
// encode as JSON.
func do(t *testing.T, h http.Handler, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		rdr = jsonBody(t, b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, id uuid.UUID) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + userToken(t, id)}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}
