package storage

import "fmt"

type ErrorKind int

const (
	// KindUnavailable means there is no durable store behind the LocalStore.
	KindUnavailable ErrorKind = iota + 1
	// KindCorrupt means the stored blob could not be decoded.
	KindCorrupt
	// KindBackend covers failures of the key-value backend itself.
	KindBackend
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindCorrupt:
		return "corrupt"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Error is returned by every LocalStore operation that fails. Callers pick a
// policy by kind; errors.Is(err, ErrCorrupt) and friends match on Kind only.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

var (
	ErrUnavailable = &Error{Kind: KindUnavailable}
	ErrCorrupt     = &Error{Kind: KindCorrupt}
	ErrBackend     = &Error{Kind: KindBackend}
)

func (e *Error) Error() string {
	msg := "storage " + e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
