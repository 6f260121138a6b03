package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies failures so callers can decide how to report them.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNotFound
	KindUpstream
	// KindPartialDegradation marks a failed search leg that was absorbed by the aggregator.
	KindPartialDegradation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream_error"
	case KindPartialDegradation:
		return "partial_degradation"
	default:
		return "unknown"
	}
}

// Error is the domain error carried across service boundaries.
// Details lists offending parameters or identifiers; Status keeps the
// upstream HTTP status for KindUpstream when one was received.
type Error struct {
	Kind    Kind
	Op      string
	Msg     string
	Details []string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, ", "))
		b.WriteString("]")
	}
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidInput(op, msg string, details ...string) error {
	return &Error{Kind: KindInvalidInput, Op: op, Msg: msg, Details: details}
}

func NotFound(op, msg string, details ...string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg, Details: details}
}

// Upstream wraps a collaborator failure. If err (or anything it wraps)
// exposes StatusCode() the status is preserved verbatim.
func Upstream(op string, err error) error {
	e := &Error{Kind: KindUpstream, Op: op, Msg: "upstream request failed", Err: err}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		e.Status = sc.StatusCode()
	}
	return e
}

// Upstreamf reports a malformed or unusable upstream payload.
func Upstreamf(op, format string, args ...any) error {
	return &Error{Kind: KindUpstream, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Degraded(op string, err error) error {
	return &Error{Kind: KindPartialDegradation, Op: op, Msg: "search leg failed", Err: err}
}

// KindOf returns the kind of the first domain.Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// AsError returns the first domain.Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
