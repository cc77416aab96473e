package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindProvider   Kind = "provider"
	KindParse      Kind = "parse"
	KindQuality    Kind = "quality"
	KindRefinement Kind = "refinement"
	KindInternal   Kind = "internal"
)

// Action is the suggested next step shown to the user.
type Action string

const (
	ActionRetry     Action = "retry"
	ActionWait      Action = "wait"
	ActionStartOver Action = "start_over"
	ActionNone      Action = "none"
)

type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Action  Action
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether the error blocks plan delivery. Quality and
// refinement errors are reported next to a plan, never instead of one.
func (e *Error) Fatal() bool {
	if e == nil {
		return false
	}
	return e.Kind != KindQuality && e.Kind != KindRefinement
}

func New(status int, code string, err error) *Error {
	return &Error{Kind: KindInternal, Status: status, Code: code, Err: err, Action: ActionRetry}
}

func Validation(code, msg string, details map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusUnprocessableEntity,
		Code:    code,
		Message: msg,
		Action:  ActionStartOver,
		Details: details,
	}
}

// Provider classifies an LLM call failure. Rate limits ask the user to wait;
// everything else is retryable.
func Provider(code string, err error) *Error {
	e := &Error{
		Kind:    KindProvider,
		Status:  http.StatusServiceUnavailable,
		Code:    code,
		Message: "the plan generation service is temporarily unavailable",
		Action:  ActionRetry,
		Err:     err,
	}
	switch code {
	case "rate_limited":
		e.Action = ActionWait
		e.Status = http.StatusTooManyRequests
	case "timeout":
		e.Status = http.StatusGatewayTimeout
		e.Message = "plan generation timed out"
	}
	return e
}

func Parse(code string, err error) *Error {
	return &Error{
		Kind:    KindParse,
		Status:  http.StatusBadGateway,
		Code:    code,
		Message: "the generated plan could not be read",
		Action:  ActionRetry,
		Err:     err,
	}
}

func Quality(issues []string) *Error {
	return &Error{
		Kind:    KindQuality,
		Status:  http.StatusOK,
		Code:    "quality_issues",
		Message: fmt.Sprintf("plan has %d quality issue(s)", len(issues)),
		Action:  ActionNone,
	}
}

func Refinement(err error) *Error {
	return &Error{
		Kind:    KindRefinement,
		Status:  http.StatusOK,
		Code:    "refinement_failed",
		Message: "refinement pass failed; returning the unrefined plan",
		Action:  ActionNone,
		Err:     err,
	}
}

func Internal(code string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Code:    code,
		Message: "internal error",
		Action:  ActionRetry,
		Err:     err,
	}
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// From coerces any error into the taxonomy. Context deadlines and
// cancellations become provider timeouts.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e := As(err); e != nil {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Provider("timeout", err)
	}
	return Internal("internal_error", err)
}

func KindOf(err error) Kind {
	if e := As(err); e != nil {
		return e.Kind
	}
	return ""
}
