package scheduling

import (
	"context"

	"go.uber.org/zap"

	"schedly/models"
	"schedly/services/gateway"
)

// SessionService manages scheduling sessions: the loaded calendar view plus
// the draft-mode reconciliation state machine. All appointment mutations go
// through these transition functions; nothing else writes session state.
type SessionService interface {
	OpenSession(ctx context.Context, rng models.DateRange) (*models.SchedulingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.SchedulingSession, error)
	ChangeRange(ctx context.Context, sessionID string, rng models.DateRange) (*models.SchedulingSession, error)
	CloseSession(ctx context.Context, sessionID string) error

	CreateAppointment(ctx context.Context, sessionID string, appt models.Appointment) (*models.SchedulingSession, error)
	UpdateAppointment(ctx context.Context, sessionID string, appt models.Appointment) (*models.SchedulingSession, error)
	MoveAppointment(ctx context.Context, sessionID, apptID, start, end string) (*models.SchedulingSession, error)
	ResizeAppointment(ctx context.Context, sessionID, apptID, end string) (*models.SchedulingSession, error)
	DeleteAppointment(ctx context.Context, sessionID, apptID string) (*models.SchedulingSession, error)

	// EnterDraft runs the optimizer over the session's range and switches to
	// draft mode. The returned flag is the optimizer's global validity verdict.
	EnterDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, bool, error)
	SaveDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, error)
	ResetDraft(ctx context.Context, sessionID string) (*models.SchedulingSession, error)

	// ExplainAppointment renders the conflict explanation for one appointment.
	ExplainAppointment(ctx context.Context, sessionID, apptID string) (string, error)

	// RefreshConflicts re-runs the evaluator and merges conflict annotations,
	// skipping silently when the session revision has moved past the given one.
	RefreshConflicts(ctx context.Context, sessionID string, revision int64) error
}

// ConflictRefreshEnqueuer schedules a best-effort background conflict
// refresh for a session at a given revision.
type ConflictRefreshEnqueuer interface {
	EnqueueConflictRefresh(sessionID string, revision int64) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Gateway  gateway.Gateway
	Sessions SessionStore
	Refresh  ConflictRefreshEnqueuer // optional; nil disables background refreshes
	Logger   *zap.Logger
}

var _ SessionService = (*DefaultSessionService)(nil)
