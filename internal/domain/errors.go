package domain

import "errors"

// Sentinel errors shared across services and delivery.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("you should sign in first")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrNotRecognized      = errors.New("this event is invite-only")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotJoinable        = errors.New("talk is not joinable")
	ErrNotCancellable     = errors.New("talk cannot be dropped")
	ErrActionInProgress   = errors.New("another action is in progress")
)

// RemoteError is returned when an operation in the document store reports
// an error tag. Message is the store's text and is safe to show to users.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Op + ": remote operation failed"
	}
	return e.Op + ": " + e.Message
}

// IsRemote reports whether err carries a RemoteError and returns it.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// BlockedError explains why a join or drop was refused. Err is
// ErrNotJoinable or ErrNotCancellable.
type BlockedError struct {
	Err    error
	Reason string
}

func (e *BlockedError) Error() string { return e.Err.Error() + ": " + e.Reason }

func (e *BlockedError) Unwrap() error { return e.Err }
