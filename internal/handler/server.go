// Package handler implements the HTTP handlers for the Coup de Tête API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (roll.go, leaderboard.go, etc.) but share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/middleware"
	"github.com/coupdetete/backend/internal/roll"
	"github.com/coupdetete/backend/internal/service"
)

// QuizServicer defines the quiz operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without touching the database or service layer.
type QuizServicer interface {
	Questions() []domain.QuizQuestion
	Submit(ctx context.Context, actor *domain.Actor, answers map[string]string) (service.QuizResult, error)
}

// RollServicer records spins.
type RollServicer interface {
	Record(ctx context.Context, actor *domain.Actor, in roll.SpinInput) (domain.Spin, error)
}

// LeaderboardServicer ranks players.
type LeaderboardServicer interface {
	Get(ctx context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error)
}

// DestinationServicer filters, personalizes and picks destinations.
type DestinationServicer interface {
	Personalized(ctx context.Context, actor *domain.Actor, f roll.BaseFilter) (service.DestinationList, error)
	Random(ctx context.Context, actor *domain.Actor, f roll.BaseFilter, recent roll.Window) (service.DestinationPick, error)
	Search(query string, departure domain.Departure, limit int) []domain.Destination
	Archetypes(ctx context.Context) ([]service.ArchetypeSummary, error)
}

// PreferenceServicer reads and writes archetype preferences.
type PreferenceServicer interface {
	Get(ctx context.Context, actor domain.Actor) (*service.Preference, error)
	Set(ctx context.Context, actor domain.Actor, archetypeID string, enabled *bool) (*service.Preference, error)
}

// GuestServicer manages guest players.
type GuestServicer interface {
	Create(ctx context.Context, username string, fingerprint *string) (domain.GuestUser, error)
	Get(ctx context.Context, id uuid.UUID) (domain.GuestUser, error)
	Rank(ctx context.Context, id uuid.UUID) (service.GuestRank, error)
}

// ProfileServicer manages user profiles and stats.
type ProfileServicer interface {
	Update(ctx context.Context, userID uuid.UUID, in service.ProfileUpdate) (domain.User, error)
	Stats(ctx context.Context, actor *domain.Actor) (domain.UserStats, error)
}

// SubscriptionServicer runs checkout and webhook reconciliation.
type SubscriptionServicer interface {
	Checkout(ctx context.Context, userID uuid.UUID, embedded bool) (billing.CheckoutSession, error)
	SessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error)
	Portal(ctx context.Context, userID uuid.UUID) (string, error)
	Status(ctx context.Context, userID uuid.UUID) (service.SubscriptionStatus, error)
	HandleEvent(ctx context.Context, ev billing.Event) error
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds everything the Server needs. Wire it in main.go.
type Deps struct {
	Quiz          QuizServicer
	Rolls         RollServicer
	Leaderboard   LeaderboardServicer
	Destinations  DestinationServicer
	Preferences   PreferenceServicer
	Guests        GuestServicer
	Profiles      ProfileServicer
	Subscriptions SubscriptionServicer
	DB            Pinger

	Auth          *middleware.Authenticator
	RollLimiter   *middleware.RateLimiter
	WebhookSecret string
	Log           *slog.Logger
}

// Server implements every API endpoint.
type Server struct {
	Deps
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return &Server{Deps: d}
}

// Routes returns the chi router with every endpoint registered. Global
// middleware (request id, logging, CORS, body limit) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		// Stripe signs the payload; bearer tokens do not apply.
		r.Post("/stripe/webhook", s.StripeWebhook)

		r.Group(func(r chi.Router) {
			r.Use(s.Auth.Optional)

			r.Get("/archetypes", s.ListArchetypes)
			r.Get("/archetypes/quiz", s.GetQuiz)
			r.Post("/archetypes/quiz", s.SubmitQuiz)

			r.With(s.RollLimiter.Handler).Post("/roll", s.Roll)
			r.Get("/leaderboard", s.GetLeaderboard)

			r.Get("/destinations/personalized", s.PersonalizedDestinations)
			r.Post("/destinations/random", s.RandomDestination)
			r.Get("/destinations/search", s.SearchDestinations)

			r.Post("/guests", s.CreateGuest)
			r.Get("/guests/{id}", s.GetGuest)
			r.Get("/guests/{id}/rank", s.GetGuestRank)

			r.Get("/me/stats", s.GetStats)
			r.Get("/stripe/session-status", s.CheckoutSessionStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.Auth.Required)

			r.Get("/user/preferences", s.GetPreferences)
			r.Post("/user/preferences", s.SetPreferences)

			r.Put("/me", s.UpdateMe)

			r.Post("/stripe/checkout", s.Checkout)
			r.Post("/stripe/portal", s.Portal)
			r.Get("/subscription/status", s.SubscriptionStatus)
		})
	})

	return r
}
