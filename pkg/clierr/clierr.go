package clierr

// Type buckets a user-facing error so commands can pick the right message
// and, eventually, exit code.
type Type string

const (
	Validation Type = "validation"
	NotFound   Type = "not_found"
	Download   Type = "download"
	Internal   Type = "internal"
)

// Error pairs a message meant for the terminal with the underlying cause.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given type around an optional cause.
func New(t Type, msg string, err error) *Error { return &Error{Type: t, Message: msg, Err: err} }
