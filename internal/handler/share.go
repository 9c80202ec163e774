package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/service"
)

// shareRequest is the body of POST /trips/{tripID}/share.
type shareRequest struct {
	IsPublic  bool       `json:"isPublic"`
	CanCopy   bool       `json:"canCopy"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// shareUpdateRequest is the body of PATCH /trips/{tripID}/share.
type shareUpdateRequest struct {
	IsPublic bool `json:"isPublic"`
	CanCopy  bool `json:"canCopy"`
}

type shareResponse struct {
	ShareID   string     `json:"shareId"`
	IsPublic  bool       `json:"isPublic"`
	CanCopy   bool       `json:"canCopy"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// sharedTripResponse is the public projection served to share-link viewers.
// It never carries admin notes, owner identity, lock state, or expenses.
type sharedTripResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	CoverImage  string             `json:"coverImage,omitempty"`
	CanCopy     bool               `json:"canCopy"`
	Stops       []stopResponse     `json:"stops"`
	Estimated   estimatedCostBody  `json:"estimated"`
}

// CreateShare handles POST /trips/{tripID}/share.
// A trip holds at most one link; a second create returns 409 and leaves
// the original link valid.
func (s *Server) CreateShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	share, err := s.shares.Create(r.Context(), actor, tripID, service.ShareParams{
		IsPublic:  req.IsPublic,
		CanCopy:   req.CanCopy,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shareToResponse(share))
}

// GetShare handles GET /trips/{tripID}/share.
func (s *Server) GetShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	share, err := s.shares.GetByTripID(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareToResponse(share))
}

// UpdateShare handles PATCH /trips/{tripID}/share.
// Toggles visibility flags; the share token never changes.
func (s *Server) UpdateShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	var req shareUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	share, err := s.shares.Update(r.Context(), actor, tripID, req.IsPublic, req.CanCopy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareToResponse(share))
}

// RevokeShare handles DELETE /trips/{tripID}/share.
func (s *Server) RevokeShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	if err := s.shares.Revoke(r.Context(), actor, tripID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSharedTrip handles GET /shared/{shareID} — the one anonymous route.
// Revoked, private, and expired links are indistinguishable: all 404.
func (s *Server) GetSharedTrip(w http.ResponseWriter, r *http.Request) {
	view, err := s.shares.Resolve(r.Context(), chi.URLParam(r, "shareID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sharedTripResponse{
		Name:        view.TripName,
		Description: view.Description,
		StartDate:   openapi_types.Date{Time: view.StartDate},
		EndDate:     openapi_types.Date{Time: view.EndDate},
		CoverImage:  view.CoverImage,
		CanCopy:     view.CanCopy,
		Stops:       stopsToResponse(view.Stops),
		Estimated: estimatedCostBody{
			ActivityCost: view.Estimated.ActivityCost,
			LivingCost:   view.Estimated.LivingCost,
			Total:        view.Estimated.Total,
		},
	})
}

func shareToResponse(share domain.SharedTrip) shareResponse {
	return shareResponse{
		ShareID:   share.ShareID,
		IsPublic:  share.IsPublic,
		CanCopy:   share.CanCopy,
		ExpiresAt: share.ExpiresAt,
		CreatedAt: share.CreatedAt,
	}
}
