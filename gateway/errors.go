package gateway

import (
	"errors"
	"fmt"
)

// ErrNoTransactionID is returned when Pay or Verify runs before a
// successful Purchase supplied a transaction id. This is a caller state
// error, not a gateway rejection.
var ErrNoTransactionID = errors.New("invoice has no transaction id")

// ErrEmptyResponse marks a remote call that produced no usable body.
var ErrEmptyResponse = errors.New("empty response from bank gateway")

// TransportError wraps a failure of the RPC channel itself: no response,
// malformed response, or a remote-signaled fault. Distinguishable from a
// business-level rejection by type.
type TransportError struct {
	Driver string
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Driver, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PurchaseFailedError is an explicit rejection (or unrecognized status)
// from the bank during purchase, carrying the raw status for diagnostics.
type PurchaseFailedError struct {
	Driver  string
	Status  string
	Message string
}

func (e *PurchaseFailedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: purchase failed with status %q: %s", e.Driver, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: purchase failed with status %q", e.Driver, e.Status)
}

// InvalidPaymentError covers a cancelled callback, missing correlation
// data, or a bank rejection during verify/settle. For settle-family
// drivers a best-effort reversal is attempted before this is returned.
type InvalidPaymentError struct {
	Driver  string
	Status  string
	Message string
}

func (e *InvalidPaymentError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: invalid payment (status %q): %s", e.Driver, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: invalid payment (status %q)", e.Driver, e.Status)
}
