package gateway

import (
	"errors"

	"github.com/google/uuid"
)

// Invoice describes a payable amount. The unique id is fixed at
// construction; the transaction id is filled in by a driver during
// purchase and may be set only once.
type Invoice struct {
	uuid          string
	amount        int64
	details       map[string]any
	transactionID string
}

// NewInvoice creates an invoice for the given amount (in toman) with a
// generated unique id.
func NewInvoice(amount int64) *Invoice {
	return NewInvoiceWithUUID(uuid.NewString(), amount)
}

// NewInvoiceWithUUID creates an invoice with a caller-supplied unique id,
// e.g. when rebuilding the invoice after the bank redirect.
func NewInvoiceWithUUID(id string, amount int64) *Invoice {
	return &Invoice{
		uuid:    id,
		amount:  amount,
		details: map[string]any{},
	}
}

// UUID returns the invoice's immutable unique id.
func (i *Invoice) UUID() string {
	return i.uuid
}

// Amount returns the payable amount in toman.
func (i *Invoice) Amount() int64 {
	return i.amount
}

// Detail returns a free-form detail value, or nil when unset.
func (i *Invoice) Detail(key string) any {
	return i.details[key]
}

// SetDetail attaches a free-form detail to the invoice. The "description"
// key overrides the driver's default description; "payerId" is forwarded
// by drivers whose protocol carries one.
func (i *Invoice) SetDetail(key string, value any) *Invoice {
	i.details[key] = value
	return i
}

// TransactionID returns the most recently set transaction id, or "" when
// no purchase has succeeded yet.
func (i *Invoice) TransactionID() string {
	return i.transactionID
}

// SetTransactionID records the bank token for this invoice. Setting a
// different id after one is already present is rejected; re-setting the
// same id is allowed so callers can rehydrate an invoice after the
// redirect round-trip.
func (i *Invoice) SetTransactionID(id string) error {
	if id == "" {
		return errors.New("transaction id must not be empty")
	}
	if i.transactionID != "" && i.transactionID != id {
		return errors.New("transaction id already set")
	}
	i.transactionID = id
	return nil
}
