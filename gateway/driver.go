package gateway

import (
	"context"
	"net/url"
)

// Driver is a bank-specific implementation of the three-phase payment
// protocol. A driver instance is bound to exactly one invoice and one
// settings record for its whole lifecycle; concurrent transactions need
// separate driver instances.
type Driver interface {
	// Name returns the gateway identifier.
	Name() string

	// Purchase registers a pending transaction with the bank and returns
	// the bank token. On success the token is also stored on the invoice.
	Purchase(ctx context.Context) (string, error)

	// Pay produces the redirect instruction that sends the user to the
	// bank's payment page. Requires a successful Purchase first.
	Pay() (*RedirectForm, error)

	// Verify confirms the transaction outcome after the user returns from
	// the bank, using the callback payload the bank redirected with.
	Verify(ctx context.Context, cb Callback) (*Receipt, error)
}

// RedirectForm instructs the hosting application to POST the user to the
// bank's payment page. Rendering the form is the host's concern.
type RedirectForm struct {
	URL    string            `json:"url"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

// Callback is the field set the bank redirected the user back with.
// Field names are part of each bank's contract and case-sensitive.
type Callback map[string]string

// Get returns the value for key, or "" when absent.
func (c Callback) Get(key string) string {
	return c[key]
}

// CallbackFromValues builds a Callback from parsed query/POST params.
func CallbackFromValues(values url.Values) Callback {
	cb := make(Callback, len(values))
	for k := range values {
		cb[k] = values.Get(k)
	}
	return cb
}
