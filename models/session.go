package models

import "time"

// SchedulingSession holds one client's loaded calendar view plus its draft
// editing state. It is the single owner of the appointment list: every
// mutation goes through the reconciliation engine's transition functions.
type SchedulingSession struct {
	SessionID    string        `json:"sessionId"`
	Range        DateRange     `json:"range"`
	Appointments []Appointment `json:"appointments"`

	IsDraftMode bool `json:"isDraftMode"`
	// Snapshot taken when draft mode was entered; rollback context only,
	// never replayed.
	OriginalAppointments []Appointment `json:"originalAppointments,omitempty"`
	// IDs touched since draft mode began. Grows monotonically until the
	// session leaves draft mode.
	ModifiedEventIDs []string `json:"modifiedEventIds,omitempty"`

	// Revision increases on every mutation; background conflict refreshes
	// carry the revision they were enqueued under and are dropped when stale.
	Revision int64 `json:"revision"`
	// DraftSeq disambiguates draft sentinel IDs minted in the same millisecond.
	DraftSeq int64 `json:"draftSeq"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasModified reports whether the given appointment ID was touched in the
// current draft session.
func (s *SchedulingSession) HasModified(id string) bool {
	for _, m := range s.ModifiedEventIDs {
		if m == id {
			return true
		}
	}
	return false
}

// MarkModified records an appointment ID as touched. IDs are never pruned
// mid-session, even if a field is edited back to its original value.
func (s *SchedulingSession) MarkModified(id string) {
	if !s.HasModified(id) {
		s.ModifiedEventIDs = append(s.ModifiedEventIDs, id)
	}
}

// FindAppointment returns a pointer into the session's appointment list, or
// nil when the ID is no longer present (stale UI reference).
func (s *SchedulingSession) FindAppointment(id string) *Appointment {
	for i := range s.Appointments {
		if s.Appointments[i].ID == id {
			return &s.Appointments[i]
		}
	}
	return nil
}
