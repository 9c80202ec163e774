package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DuplicateTrip handles POST /trips/{tripID}/duplicate — admin-only
// template duplication under the same owner. Structure only; expenses are
// not carried into templates.
func (s *Server) DuplicateTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	created, err := s.clones.DuplicateTemplate(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, actor))
}

// CopySharedTrip handles POST /shared/{shareID}/copy — copies a shared
// trip, expenses included, into the requester's own account.
func (s *Server) CopySharedTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	created, err := s.clones.CopyFromShare(r.Context(), actor, chi.URLParam(r, "shareID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, actor))
}
