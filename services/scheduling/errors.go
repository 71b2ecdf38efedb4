package scheduling

import "fmt"

// Error codes for session operations. Handlers map these onto HTTP statuses.
const (
	CodeSessionNotFound = "sessionNotFound"
	CodeNotFound        = "appointmentNotFound"
	CodeInvalidEvent    = "invalidEvent"
	CodeRemoteFailed    = "remoteFailed"
	CodeSaveFailed      = "saveFailed"
)

type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSessionError(code, msg string) error {
	return &SessionError{Code: code, Message: msg}
}
