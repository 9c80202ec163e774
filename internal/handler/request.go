package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/middleware"
)

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing garbage. Loosely shaped payloads never make it past this
// boundary into the service layer.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// requestActor returns the actor placed in the context by the actor
// middleware. Routes behind RequireActor always have one; the zero return
// only happens on a wiring mistake, which the caller treats as 401.
func requestActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "missing actor identity"))
		return domain.Actor{}, false
	}
	return actor, true
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
