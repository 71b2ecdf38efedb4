package models

// DraftIDPrefix marks appointments created locally inside a draft session,
// before they have been committed to the backend.
const DraftIDPrefix = "draft-"

// Appointment is the canonical in-memory booking unit. Display names are
// denormalized from the backend's resource references; the optional numeric
// IDs back-reference the resource directory when they were resolvable.
type Appointment struct {
	ID         string `json:"id"` // backend numeric ID stringified, "draft-<ts>" sentinel, or "" for an unsaved form
	ClientName string `json:"clientName"`
	Service    string `json:"service"`
	Provider   string `json:"provider"`
	Room       string `json:"room"`

	ClientID   *int `json:"clientId,omitempty"`
	ServiceID  *int `json:"serviceId,omitempty"`
	ProviderID *int `json:"providerId,omitempty"`
	RoomID     *int `json:"roomId,omitempty"`

	ProviderLocked *bool `json:"providerLocked,omitempty"`
	RoomLocked     *bool `json:"roomLocked,omitempty"`

	// ISO 8601, timezone-preserving; passed through verbatim from the backend.
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Conflicts []ConflictRecord `json:"conflicts,omitempty"`
}

// IsDraft reports whether the appointment only exists locally in a draft session.
func (a Appointment) IsDraft() bool {
	return len(a.ID) > len(DraftIDPrefix) && a.ID[:len(DraftIDPrefix)] == DraftIDPrefix
}

// ConflictRecord is one constraint violation reported by the backend evaluator.
type ConflictRecord struct {
	EvaluationCriteria string           `json:"evaluationCriteria"`
	Results            []ConflictResult `json:"results"`
}

// ConflictResult names the booking and the resources involved in a violation.
type ConflictResult struct {
	BookingID        int   `json:"bookingId"`
	Locations        []int `json:"locations,omitempty"`
	Workers          []int `json:"workers,omitempty"`
	ConflictsWithIDs []int `json:"conflictsWithIds,omitempty"`
}

// DateRange bounds a calendar view, ISO 8601 timestamps.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}
