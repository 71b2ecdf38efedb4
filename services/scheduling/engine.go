package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedly/models"
	"schedly/services/gateway"
)

// OpenSession fetches the bookings for a date range and creates a session
// around them.
func (s *DefaultSessionService) OpenSession(ctx context.Context, rng models.DateRange) (*models.SchedulingSession, error) {
	res := s.Gateway.FetchEvents(ctx, rng)
	if !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}

	now := time.Now()
	session := &models.SchedulingSession{
		SessionID:    uuid.New().String(),
		Range:        rng,
		Appointments: BackendToAppointments(res.Events),
		Revision:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("opened scheduling session",
		zap.String("sessionId", session.SessionID),
		zap.Int("appointments", len(session.Appointments)))
	return session, nil
}

func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.SchedulingSession, error) {
	return s.loadSession(ctx, sessionID)
}

func (s *DefaultSessionService) CloseSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

// ChangeRange moves the visible window. In normal mode the list is refetched
// for the new range; in draft mode the local list stays authoritative and
// only the recorded range changes.
func (s *DefaultSessionService) ChangeRange(ctx context.Context, sessionID string, rng models.DateRange) (*models.SchedulingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Range = rng

	if !session.IsDraftMode {
		res := s.Gateway.FetchEvents(ctx, rng)
		if !res.Success {
			return nil, newSessionError(CodeRemoteFailed, res.Error)
		}
		session.Appointments = BackendToAppointments(res.Events)
	}
	session.Revision++
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateAppointment adds a booking. In draft mode it only exists locally
// under a draft sentinel ID until Save; in normal mode it is created
// remotely and the view is refetched.
func (s *DefaultSessionService) CreateAppointment(ctx context.Context, sessionID string, appt models.Appointment) (*models.SchedulingSession, error) {
	if err := validateTimes(appt.StartTime, appt.EndTime); err != nil {
		return nil, err
	}
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsDraftMode {
		appt.ID = mintDraftID(session)
		session.Appointments = append(session.Appointments, appt)
		session.MarkModified(appt.ID)
		return s.commitDraftMutation(ctx, session)
	}

	if res := s.Gateway.CreateBooking(ctx, appt); !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}
	return s.refetch(ctx, session)
}

// UpdateAppointment applies an inline edit to an existing booking.
func (s *DefaultSessionService) UpdateAppointment(ctx context.Context, sessionID string, appt models.Appointment) (*models.SchedulingSession, error) {
	if err := validateTimes(appt.StartTime, appt.EndTime); err != nil {
		return nil, err
	}
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	existing := session.FindAppointment(appt.ID)
	if existing == nil {
		return nil, newSessionError(CodeNotFound, fmt.Sprintf("appointment %s is no longer loaded", appt.ID))
	}

	if session.IsDraftMode {
		// Keep conflict annotations until the evaluator refreshes them.
		appt.Conflicts = existing.Conflicts
		*existing = appt
		session.MarkModified(appt.ID)
		return s.commitDraftMutation(ctx, session)
	}

	if res := s.Gateway.UpdateBooking(ctx, appt); !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}
	return s.refetch(ctx, session)
}

// MoveAppointment shifts a booking to new start/end times (drag gesture).
func (s *DefaultSessionService) MoveAppointment(ctx context.Context, sessionID, apptID, start, end string) (*models.SchedulingSession, error) {
	return s.retime(ctx, sessionID, apptID, start, end)
}

// ResizeAppointment changes only the end time (resize gesture).
func (s *DefaultSessionService) ResizeAppointment(ctx context.Context, sessionID, apptID, end string) (*models.SchedulingSession, error) {
	return s.retime(ctx, sessionID, apptID, "", end)
}

func (s *DefaultSessionService) retime(ctx context.Context, sessionID, apptID, start, end string) (*models.SchedulingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	existing := session.FindAppointment(apptID)
	if existing == nil {
		return nil, newSessionError(CodeNotFound, fmt.Sprintf("appointment %s is no longer loaded", apptID))
	}

	updated := *existing
	if start != "" {
		updated.StartTime = start
	}
	if end != "" {
		updated.EndTime = end
	}
	if err := validateTimes(updated.StartTime, updated.EndTime); err != nil {
		return nil, err
	}

	if session.IsDraftMode {
		*existing = updated
		session.MarkModified(apptID)
		return s.commitDraftMutation(ctx, session)
	}

	if res := s.Gateway.UpdateBooking(ctx, updated); !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}
	return s.refetch(ctx, session)
}

// DeleteAppointment removes a booking. In draft mode the removal is local
// only; deletions of persisted bookings are not replayed on Save.
func (s *DefaultSessionService) DeleteAppointment(ctx context.Context, sessionID, apptID string) (*models.SchedulingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range session.Appointments {
		if session.Appointments[i].ID == apptID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, newSessionError(CodeNotFound, fmt.Sprintf("appointment %s is no longer loaded", apptID))
	}

	if session.IsDraftMode {
		removed := session.Appointments[idx]
		session.Appointments = append(session.Appointments[:idx], session.Appointments[idx+1:]...)
		session.MarkModified(apptID)
		if !removed.IsDraft() {
			s.Logger.Warn("persisted booking removed locally in draft mode; removal will not be saved",
				zap.String("sessionId", sessionID), zap.String("appointmentId", apptID))
		}
		return s.commitDraftMutation(ctx, session)
	}

	if res := s.Gateway.DeleteBooking(ctx, apptID); !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}
	return s.refetch(ctx, session)
}

// EnterDraft invokes the optimizer for the session's range, swaps in its
// proposed booking set and flags everything the proposal changed. Draft mode
// is entered even when the optimizer reports the solution as not fully
// valid; the flag is surfaced to the caller.
func (s *DefaultSessionService) EnterDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, bool, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	res := s.Gateway.OptimizeBookings(ctx, session.Range.From, session.Range.To)
	if !res.Success {
		return nil, false, newSessionError(CodeRemoteFailed, res.Error)
	}

	proposed := BackendToAppointments(res.OptimizedEvents)
	changed, omitted := DiffAppointments(session.Appointments, proposed)
	if len(omitted) > 0 {
		s.Logger.Warn("optimizer omitted previously loaded bookings; they remain unflagged",
			zap.String("sessionId", sessionID), zap.Strings("omitted", omitted))
	}

	if !session.IsDraftMode {
		session.IsDraftMode = true
		session.OriginalAppointments = session.Appointments
	}
	session.Appointments = proposed
	for _, id := range changed {
		session.MarkModified(id)
	}
	session.Revision++
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, false, err
	}

	s.Logger.Info("entered draft mode",
		zap.String("sessionId", sessionID),
		zap.Int("modified", len(session.ModifiedEventIDs)),
		zap.Bool("isValid", res.IsValid))
	s.enqueueRefresh(session)
	return session, res.IsValid, nil
}

// SaveDraft persists every modified appointment, one remote call each,
// awaiting all of them. Any failure leaves the draft state untouched for a
// retry; there is no rollback of the successfully saved subset.
func (s *DefaultSessionService) SaveDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsDraftMode {
		return session, nil
	}

	var toSave []models.Appointment
	for _, id := range session.ModifiedEventIDs {
		if appt := session.FindAppointment(id); appt != nil {
			toSave = append(toSave, *appt)
		}
	}

	results := make([]bool, len(toSave))
	var wg sync.WaitGroup
	for i, appt := range toSave {
		wg.Add(1)
		go func(i int, appt models.Appointment) {
			defer wg.Done()
			var res gateway.MutationResult
			if appt.IsDraft() {
				res = s.Gateway.CreateBooking(ctx, appt)
			} else {
				res = s.Gateway.UpdateBooking(ctx, appt)
			}
			if !res.Success {
				s.Logger.Error("failed to save draft appointment",
					zap.String("sessionId", sessionID),
					zap.String("appointmentId", appt.ID),
					zap.String("error", res.Error))
			}
			results[i] = res.Success
		}(i, appt)
	}
	wg.Wait()

	for _, ok := range results {
		if !ok {
			return session, newSessionError(CodeSaveFailed, "some changes failed to save")
		}
	}

	session.IsDraftMode = false
	session.OriginalAppointments = nil
	session.ModifiedEventIDs = nil
	saved, err := s.refetch(ctx, session)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("draft saved", zap.String("sessionId", sessionID), zap.Int("persisted", len(toSave)))
	return saved, nil
}

// ResetDraft unconditionally discards local draft edits and restores server
// truth by refetching the current range.
func (s *DefaultSessionService) ResetDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.IsDraftMode = false
	session.OriginalAppointments = nil
	session.ModifiedEventIDs = nil
	return s.refetch(ctx, session)
}

// ExplainAppointment renders the conflict explanation for one appointment
// against the session's current resource directory.
func (s *DefaultSessionService) ExplainAppointment(ctx context.Context, sessionID, apptID string) (string, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	appt := session.FindAppointment(apptID)
	if appt == nil {
		return "", newSessionError(CodeNotFound, fmt.Sprintf("appointment %s is no longer loaded", apptID))
	}
	dir := BuildResourceDirectory(session.Appointments)
	return BuildConflictExplanation(appt.Conflicts, *appt, dir), nil
}

func (s *DefaultSessionService) loadSession(ctx context.Context, sessionID string) (*models.SchedulingSession, error) {
	if sessionID == "" {
		return nil, newSessionError(CodeSessionNotFound, "session not initialized")
	}
	session, err := s.Sessions.Get(ctx, sessionID)
	if err == ErrSessionNotFound {
		return nil, newSessionError(CodeSessionNotFound, err.Error())
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// commitDraftMutation stores the mutated session and schedules a best-effort
// conflict refresh keyed to the new revision.
func (s *DefaultSessionService) commitDraftMutation(ctx context.Context, session *models.SchedulingSession) (*models.SchedulingSession, error) {
	session.Revision++
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	s.enqueueRefresh(session)
	return session, nil
}

func (s *DefaultSessionService) enqueueRefresh(session *models.SchedulingSession) {
	if s.Refresh == nil {
		return
	}
	if err := s.Refresh.EnqueueConflictRefresh(session.SessionID, session.Revision); err != nil {
		// Best effort; the mutation itself already succeeded.
		s.Logger.Warn("failed to enqueue conflict refresh",
			zap.String("sessionId", session.SessionID), zap.Error(err))
	}
}

// refetch replaces the session's appointment list with server truth for the
// current range and stores the session.
func (s *DefaultSessionService) refetch(ctx context.Context, session *models.SchedulingSession) (*models.SchedulingSession, error) {
	res := s.Gateway.FetchEvents(ctx, session.Range)
	if !res.Success {
		return nil, newSessionError(CodeRemoteFailed, res.Error)
	}
	session.Appointments = BackendToAppointments(res.Events)
	session.Revision++
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func mintDraftID(session *models.SchedulingSession) string {
	id := fmt.Sprintf("%s%d", models.DraftIDPrefix, time.Now().UnixMilli())
	if session.FindAppointment(id) == nil {
		return id
	}
	// Two creations within the same millisecond; disambiguate.
	session.DraftSeq++
	return fmt.Sprintf("%s-%d", id, session.DraftSeq)
}

func validateTimes(start, end string) error {
	st, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return newSessionError(CodeInvalidEvent, "invalid event data: missing or malformed start time")
	}
	en, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return newSessionError(CodeInvalidEvent, "invalid event data: missing or malformed end time")
	}
	if !st.Before(en) {
		return newSessionError(CodeInvalidEvent, "invalid event data: start time must be before end time")
	}
	return nil
}
