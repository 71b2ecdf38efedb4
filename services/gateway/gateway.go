package gateway

import (
	"context"

	"schedly/models"
)

// FetchEventsResult is the outcome of listing bookings for a date range.
type FetchEventsResult struct {
	Events  []models.BackendCalendarEvent `json:"events"`
	Success bool                          `json:"success"`
	Error   string                        `json:"error,omitempty"`
}

// MutationResult is the outcome of a create/update/delete call.
type MutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// EvaluateResult is the outcome of a stateless conflict evaluation.
type EvaluateResult struct {
	Success   bool                    `json:"success"`
	Conflicts []models.ConflictRecord `json:"conflicts,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// OptimizeResult is the outcome of asking the backend optimizer for a
// proposed booking set across a date range.
type OptimizeResult struct {
	Success         bool                          `json:"success"`
	OptimizedEvents []models.BackendCalendarEvent `json:"optimizedEvents,omitempty"`
	IsValid         bool                          `json:"isValid"`
	Error           string                        `json:"error,omitempty"`
}

// Gateway is the remote scheduling backend surface the core depends on.
// Implementations fold every transport failure into the result structs;
// callers never see an unhandled fault.
type Gateway interface {
	FetchEvents(ctx context.Context, rng models.DateRange) FetchEventsResult

	// Full resource directories, consumed by the creation/edit form
	// endpoints. Failures degrade to empty slices.
	FetchClients(ctx context.Context) []models.BackendClient
	FetchServices(ctx context.Context) []models.BackendServiceRef
	FetchWorkers(ctx context.Context) []models.BackendWorker
	FetchLocations(ctx context.Context) []models.BackendLocation

	CreateBooking(ctx context.Context, appt models.Appointment) MutationResult
	// UpdateBooking requires a persisted numeric appointment ID.
	UpdateBooking(ctx context.Context, appt models.Appointment) MutationResult
	DeleteBooking(ctx context.Context, id string) MutationResult

	// EvaluateBookings runs a stateless conflict check; no persistence side
	// effect. All appointments must carry persisted numeric IDs.
	EvaluateBookings(ctx context.Context, appts []models.Appointment) EvaluateResult

	// OptimizeBookings runs the opaque scheduling algorithm for a range and
	// returns a complete proposed booking set plus a global validity flag.
	OptimizeBookings(ctx context.Context, from, to string) OptimizeResult
}
