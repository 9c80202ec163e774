// Package domain contains the core data types for the Wayfarer API.
// This package depends on nothing but uuid and time, and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus describes where a trip sits in its lifecycle.
type TripStatus string

const (
	TripStatusPlanning TripStatus = "planning"
	TripStatusUpcoming TripStatus = "upcoming"
	TripStatusOngoing  TripStatus = "ongoing"
	TripStatusPast     TripStatus = "past"
)

// ValidTripStatus reports whether s is one of the known trip statuses.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusPlanning, TripStatusUpcoming, TripStatusOngoing, TripStatusPast:
		return true
	}
	return false
}

// Trip is the top-level aggregate: it exclusively owns its stops, activities,
// expenses, and share link, all of which cascade on delete.
// The date range is half-open [StartDate, EndDate); EndDate must be strictly
// after StartDate.
//
// AdminNotes is privileged — it must never appear in responses to non-admin
// viewers or in the public share projection.
type Trip struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      TripStatus
	CoverImage  string
	IsLocked    bool
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
