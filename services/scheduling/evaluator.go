package scheduling

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"schedly/models"
)

// RefreshConflicts re-runs the backend evaluator over the session's
// persisted appointments and merges the returned annotations. The refresh is
// best-effort: it never touches draft flags or the modified-ID set, and it
// is dropped when the session has moved past the revision it was scheduled
// under, so completion order between overlapping refreshes cannot matter.
func (s *DefaultSessionService) RefreshConflicts(ctx context.Context, sessionID string, revision int64) error {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err == ErrSessionNotFound {
		return nil // session expired; nothing to refresh
	}
	if err != nil {
		return err
	}
	if session.Revision != revision {
		s.Logger.Debug("skipping stale conflict refresh",
			zap.String("sessionId", sessionID),
			zap.Int64("scheduledRevision", revision),
			zap.Int64("currentRevision", session.Revision))
		return nil
	}

	// The remote evaluator only understands persisted booking IDs.
	persisted := make([]models.Appointment, 0, len(session.Appointments))
	for _, appt := range session.Appointments {
		if appt.ID == "" || appt.IsDraft() {
			continue
		}
		persisted = append(persisted, appt)
	}
	if len(persisted) == 0 {
		return nil
	}

	res := s.Gateway.EvaluateBookings(ctx, persisted)
	if !res.Success {
		s.Logger.Warn("conflict evaluation failed",
			zap.String("sessionId", sessionID), zap.String("error", res.Error))
		return nil
	}

	// Re-check after the remote round trip; a newer mutation may have landed.
	session, err = s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil
	}
	if session.Revision != revision {
		s.Logger.Debug("conflict refresh outdated after evaluation",
			zap.String("sessionId", sessionID))
		return nil
	}

	MergeConflicts(session.Appointments, res.Conflicts)
	return s.Sessions.Put(ctx, session)
}

// MergeConflicts re-keys the evaluator's conflict results by numeric booking
// ID and attaches them to the matching appointments. Each appointment
// receives only the result rows naming its own booking ID. Appointments with
// no returned results get an empty (non-nil) conflict list, clearing any
// stale annotation.
func MergeConflicts(appts []models.Appointment, conflicts []models.ConflictRecord) {
	type key struct {
		booking int
		record  int
	}
	grouped := make(map[key][]models.ConflictResult)
	for ri, record := range conflicts {
		for _, result := range record.Results {
			k := key{booking: result.BookingID, record: ri}
			grouped[k] = append(grouped[k], result)
		}
	}

	for i := range appts {
		id, err := strconv.Atoi(appts[i].ID)
		if err != nil {
			appts[i].Conflicts = []models.ConflictRecord{}
			continue
		}
		merged := []models.ConflictRecord{}
		for ri, record := range conflicts {
			if results, ok := grouped[key{booking: id, record: ri}]; ok {
				merged = append(merged, models.ConflictRecord{
					EvaluationCriteria: record.EvaluationCriteria,
					Results:            results,
				})
			}
		}
		appts[i].Conflicts = merged
	}
}
