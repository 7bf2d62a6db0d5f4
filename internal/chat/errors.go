package chat

import "errors"

var (
	ErrDuplicateConnection = errors.New("connection already joined")
	ErrGeoRejected         = errors.New("outside admission region")
	ErrContentRejected     = errors.New("content rejected")
	ErrUnknownConnection   = errors.New("unknown connection")
	ErrNameTaken           = errors.New("display name taken")
	ErrInvalidJoin         = errors.New("invalid join request")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrDispatcherStopped   = errors.New("dispatcher stopped")
)

// RejectionError carries the reason returned to the client whose event failed.
type RejectionError struct {
	Err    error
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Err.Error() + ": " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(err error, reason string) error {
	return &RejectionError{Err: err, Reason: reason}
}

// Reason returns the client-facing text for err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason
	}
	switch {
	case errors.Is(err, ErrUnknownConnection):
		return "Join a room first!"
	case errors.Is(err, ErrDispatcherStopped):
		return "Server is shutting down!"
	default:
		return err.Error()
	}
}
