// Package billing holds the failure taxonomy shared by the usage meter and the
// upgrade reconciler.
package billing

import (
	"errors"
	"fmt"
)

// failure kinds, matched with errors.Is
var (
	ErrValidation       = errors.New("billing: validation failed")
	ErrInvalidSignature = errors.New("billing: invalid payment signature")
	ErrGateway          = errors.New("billing: payment gateway error")
	ErrStoreUnavailable = errors.New("billing: store unavailable")
	ErrLedgerWrite      = errors.New("billing: ledger write failed")
)

// operation names carried by Error
const (
	OpCreateOrder   = "create_order"
	OpVerifyPayment = "verify_payment"
	OpComputeUsage  = "compute_usage"
	OpRecordUsage   = "record_usage"
)

// Error ties a failure kind to the operation that produced it. A create_order
// failure is the OrderCreationFailed condition, a verify_payment failure is
// UpgradeFailed.
type Error struct {
	Op     string
	Kind   error
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// reports whether the caller may retry the same request
func (e *Error) Retryable() bool {
	return errors.Is(e.Kind, ErrGateway) || errors.Is(e.Kind, ErrStoreUnavailable)
}

// rejects a request before any side effect
func Validation(op, reason string) error {
	return &Error{Op: op, Kind: ErrValidation, Reason: reason}
}

// security rejection, never retried
func InvalidSignature(op string) error {
	return &Error{Op: op, Kind: ErrInvalidSignature}
}

// gateway failure with the gateway's raw error attached
func Gateway(op string, err error) error {
	return &Error{Op: op, Kind: ErrGateway, Err: err}
}

// data store could not be reached or timed out
func StoreUnavailable(op string, err error) error {
	return &Error{Op: op, Kind: ErrStoreUnavailable, Err: err}
}

// audit trail write failed; callers log it and carry on
func LedgerWrite(op string, err error) error {
	return &Error{Op: op, Kind: ErrLedgerWrite, Err: err}
}

// reports whether err (or anything it wraps) is a retryable billing failure
func IsRetryable(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Retryable()
	}

	return false
}

// returns the operation of a billing error, or "" for foreign errors
func OpOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Op
	}

	return ""
}
