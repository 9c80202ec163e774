package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mheller/wayfarer/internal/domain"
)

// itineraryRequest is the body of PUT /trips/{tripID}/itinerary: the full
// ordered stop set. Caller-supplied order is implicit in array position;
// explicit order fields are not accepted.
type itineraryRequest struct {
	Stops []stopRequest `json:"stops"`
}

type stopRequest struct {
	CityID     uuid.UUID          `json:"cityId"`
	StartDate  openapi_types.Date `json:"startDate"`
	EndDate    openapi_types.Date `json:"endDate"`
	Notes      *string            `json:"notes,omitempty"`
	Activities []activityRequest  `json:"activities,omitempty"`
}

type activityRequest struct {
	AttractionID *uuid.UUID `json:"attractionId,omitempty"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Cost         float64    `json:"cost"`
	DurationMin  *int       `json:"durationMin,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type stopResponse struct {
	ID         uuid.UUID          `json:"id"`
	CityID     uuid.UUID          `json:"cityId"`
	Order      int                `json:"order"`
	StartDate  openapi_types.Date `json:"startDate"`
	EndDate    openapi_types.Date `json:"endDate"`
	Notes      string             `json:"notes,omitempty"`
	Activities []activityResponse `json:"activities"`
}

type activityResponse struct {
	ID           uuid.UUID  `json:"id"`
	AttractionID *uuid.UUID `json:"attractionId,omitempty"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Cost         float64    `json:"cost"`
	DurationMin  *int       `json:"durationMin,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	stops, err := s.itinerary.Get(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stopsToResponse(stops))
}

// ReplaceItinerary handles PUT /trips/{tripID}/itinerary.
// The whole stop set is replaced atomically; on any validation failure the
// prior itinerary is left untouched.
func (s *Server) ReplaceItinerary(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	stops := make([]domain.Stop, len(req.Stops))
	for i, sr := range req.Stops {
		stops[i] = requestToStop(sr)
	}

	replaced, err := s.itinerary.Replace(r.Context(), actor, tripID, stops)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stopsToResponse(replaced))
}

// --- mapping helpers --------------------------------------------------------

func requestToStop(req stopRequest) domain.Stop {
	stop := domain.Stop{
		CityID:    req.CityID,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Notes:     derefString(req.Notes),
	}
	for _, ar := range req.Activities {
		stop.Activities = append(stop.Activities, domain.Activity{
			AttractionID: ar.AttractionID,
			Name:         ar.Name,
			Type:         domain.ActivityType(ar.Type),
			Cost:         ar.Cost,
			DurationMin:  ar.DurationMin,
			ScheduledAt:  ar.ScheduledAt,
			Notes:        derefString(ar.Notes),
		})
	}
	return stop
}

func stopsToResponse(stops []domain.Stop) []stopResponse {
	out := make([]stopResponse, len(stops))
	for i, stop := range stops {
		activities := make([]activityResponse, len(stop.Activities))
		for j, a := range stop.Activities {
			activities[j] = activityResponse{
				ID:           a.ID,
				AttractionID: a.AttractionID,
				Name:         a.Name,
				Type:         string(a.Type),
				Cost:         a.Cost,
				DurationMin:  a.DurationMin,
				ScheduledAt:  a.ScheduledAt,
				Notes:        a.Notes,
			}
		}
		out[i] = stopResponse{
			ID:         stop.ID,
			CityID:     stop.CityID,
			Order:      stop.Order,
			StartDate:  openapi_types.Date{Time: stop.StartDate},
			EndDate:    openapi_types.Date{Time: stop.EndDate},
			Notes:      stop.Notes,
			Activities: activities,
		}
	}
	return out
}
