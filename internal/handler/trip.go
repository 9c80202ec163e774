package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mheller/wayfarer/internal/domain"
)

// tripRequest is the body of POST /trips and PUT /trips/{tripID}.
// isLocked and adminNotes are only honored for admin actors; the service
// drops them for everyone else.
type tripRequest struct {
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	Status      *string            `json:"status,omitempty"`
	CoverImage  *string            `json:"coverImage,omitempty"`
	IsLocked    *bool              `json:"isLocked,omitempty"`
	AdminNotes  *string            `json:"adminNotes,omitempty"`
}

// tripResponse is the JSON shape of a trip. AdminNotes is only populated
// for admin viewers.
type tripResponse struct {
	ID          uuid.UUID          `json:"id"`
	OwnerID     uuid.UUID          `json:"ownerId"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	Status      string             `json:"status"`
	CoverImage  string             `json:"coverImage,omitempty"`
	IsLocked    bool               `json:"isLocked"`
	AdminNotes  *string            `json:"adminNotes,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), actor, requestToTrip(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, actor))
}

// ListTrips handles GET /trips. Non-admins list their own trips; admins may
// pass ?owner= to list another user's.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	ownerID := actor.ID
	if raw := r.URL.Query().Get("owner"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "owner must be a UUID")
			return
		}
		ownerID = parsed
	}

	trips, err := s.trips.ListByOwner(r.Context(), actor, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, actor)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, actor))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	trip := requestToTrip(req)
	trip.ID = tripID

	updated, err := s.trips.Update(r.Context(), actor, trip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated, actor))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	if err := s.trips.Delete(r.Context(), actor, tripID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a tripRequest body into a domain.Trip.
func requestToTrip(req tripRequest) domain.Trip {
	t := domain.Trip{
		Name:        req.Name,
		Description: derefString(req.Description),
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		CoverImage:  derefString(req.CoverImage),
		IsLocked:    derefBool(req.IsLocked),
		AdminNotes:  derefString(req.AdminNotes),
	}
	if req.Status != nil {
		t.Status = domain.TripStatus(*req.Status)
	}
	return t
}

// tripToResponse converts a domain.Trip into its JSON shape, withholding
// admin notes from non-admin viewers.
func tripToResponse(t domain.Trip, actor domain.Actor) tripResponse {
	resp := tripResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Status:      string(t.Status),
		CoverImage:  t.CoverImage,
		IsLocked:    t.IsLocked,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if actor.IsAdmin {
		notes := t.AdminNotes
		resp.AdminNotes = &notes
	}
	return resp
}
