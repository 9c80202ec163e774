// Package handler implements the HTTP handlers for the Wayfarer API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (trip.go, itinerary.go, etc.) but all share the
// same Server struct so they can access its dependencies.
//
// Request bodies are decoded into explicit DTOs and validated at this
// boundary — loosely shaped payloads are rejected before they reach the
// service layer.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/middleware"
	"github.com/mheller/wayfarer/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Trip, error)
	ListByOwner(ctx context.Context, actor domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// ItineraryServicer defines the whole-itinerary operations.
type ItineraryServicer interface {
	Get(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Stop, error)
	Replace(ctx context.Context, actor domain.Actor, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)
}

// BudgetServicer builds the estimate-vs-actual view.
type BudgetServicer interface {
	Budget(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.BudgetView, error)
}

// ExpenseServicer defines the expense ledger operations.
type ExpenseServicer interface {
	Add(ctx context.Context, actor domain.Actor, tripID uuid.UUID, expense domain.Expense) (domain.Expense, error)
	ListByTrip(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Expense, error)
	Delete(ctx context.Context, actor domain.Actor, tripID, expenseID uuid.UUID) error
}

// ShareServicer defines the share-link lifecycle and the public lookup.
type ShareServicer interface {
	Create(ctx context.Context, actor domain.Actor, tripID uuid.UUID, params service.ShareParams) (domain.SharedTrip, error)
	Update(ctx context.Context, actor domain.Actor, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error)
	GetByTripID(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.SharedTrip, error)
	Revoke(ctx context.Context, actor domain.Actor, tripID uuid.UUID) error
	Resolve(ctx context.Context, shareID string) (domain.SharedTripView, error)
}

// CloneServicer defines the two cloning modes.
type CloneServicer interface {
	DuplicateTemplate(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.Trip, error)
	CopyFromShare(ctx context.Context, actor domain.Actor, shareID string) (domain.Trip, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	budget    BudgetServicer
	expenses  ExpenseServicer
	shares    ShareServicer
	clones    CloneServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, itinerary ItineraryServicer, budget BudgetServicer, expenses ExpenseServicer, shares ShareServicer, clones CloneServicer) *Server {
	return &Server{
		trips:     trips,
		itinerary: itinerary,
		budget:    budget,
		expenses:  expenses,
		shares:    shares,
		clones:    clones,
	}
}

// Routes returns the chi router for the full API surface.
// Everything under /trips requires an actor (set by the actor middleware);
// /shared/{shareID} lookup is the one anonymous route, while copying from
// a share requires an actor again.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/itinerary", s.GetItinerary)
				r.Put("/itinerary", s.ReplaceItinerary)

				r.Get("/budget", s.GetBudget)

				r.Post("/expenses", s.CreateExpense)
				r.Get("/expenses", s.ListExpenses)
				r.Delete("/expenses/{expenseID}", s.DeleteExpense)

				r.Post("/share", s.CreateShare)
				r.Get("/share", s.GetShare)
				r.Patch("/share", s.UpdateShare)
				r.Delete("/share", s.RevokeShare)

				r.Post("/duplicate", s.DuplicateTrip)
			})
		})

		r.Post("/shared/{shareID}/copy", s.CopySharedTrip)
	})

	r.Get("/shared/{shareID}", s.GetSharedTrip)

	return r
}

// tripIDParam parses the {tripID} URL parameter.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "tripID"))
}
