// Where: cli/internal/portal/errors.go
// What: Closed set of portal error kinds.
// Why: Let callers branch on failure kind instead of parsing messages.
package portal

import (
	"errors"
	"fmt"
)

// Kind classifies a portal failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindMalformedURL
	KindMissingParameter
	KindProbeFailed
	KindNotCaptive
	KindRedirectNotFound
	KindRequestFailed
	KindResponseReadError
	KindConfigRead
	KindConfigWrite
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	KindMalformedURL:      "MalformedUrl",
	KindMissingParameter:  "MissingParameter",
	KindProbeFailed:       "ProbeFailed",
	KindNotCaptive:        "NotCaptive",
	KindRedirectNotFound:  "RedirectNotFound",
	KindRequestFailed:     "RequestFailed",
	KindResponseReadError: "ResponseReadError",
	KindConfigRead:        "ConfigReadError",
	KindConfigWrite:       "ConfigWriteError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is comparisons. Only the kind is compared.
var (
	ErrMalformedURL      = &Error{Kind: KindMalformedURL}
	ErrMissingParameter  = &Error{Kind: KindMissingParameter}
	ErrProbeFailed       = &Error{Kind: KindProbeFailed}
	ErrNotCaptive        = &Error{Kind: KindNotCaptive}
	ErrRedirectNotFound  = &Error{Kind: KindRedirectNotFound}
	ErrRequestFailed     = &Error{Kind: KindRequestFailed}
	ErrResponseReadError = &Error{Kind: KindResponseReadError}
	ErrConfigRead        = &Error{Kind: KindConfigRead}
	ErrConfigWrite       = &Error{Kind: KindConfigWrite}
)

// Error is the single error type returned by the portal operations.
type Error struct {
	Kind Kind
	// Param names the missing query key for KindMissingParameter.
	Param string
	// Context is a short label of the operation that failed, e.g. "Init config".
	Context string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Kind == KindMissingParameter && e.Param != "":
		msg = fmt.Sprintf("%s: %s not found", msg, e.Param)
	case e.Kind == KindNotCaptive:
		msg += ": login url not found in the probe response"
	case e.Kind == KindRedirectNotFound:
		msg += ": could not extract login url"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s | %s", msg, e.Context)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// WithContext returns a copy of err annotated with label when err is a *Error.
// Other errors are wrapped with fmt.Errorf.
func WithContext(err error, label string) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		annotated := *pe
		annotated.Context = label
		return &annotated
	}
	return fmt.Errorf("%w | %s", err, label)
}
