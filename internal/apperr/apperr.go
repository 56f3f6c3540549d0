package apperr

import "errors"

// Expected failure classes. Services return these wrapped with a
// user-facing message; handlers translate them to HTTP status codes.
// Not-found must read the same whether the row is missing or belongs
// to another salon.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Invalid(message string) error {
	return &Error{Kind: ErrInvalid, Message: message}
}

// Message returns the user-facing text for expected errors and a
// fallback for everything else.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
