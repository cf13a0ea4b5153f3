package gateway

import (
	"context"
	"strconv"

	"pardakht/pkg/soap"
)

// Parsian implements the Driver interface for the Parsian (PEC) gateway.
// Token flow: SalePaymentRequest issues a token, the user pays on the
// bank page, ConfirmPayment settles in a single step.
type Parsian struct {
	invoice   *Invoice
	settings  ParsianSettings
	transport soap.Caller
}

// NewParsian creates a Parsian driver bound to the given invoice.
func NewParsian(invoice *Invoice, settings ParsianSettings) *Parsian {
	return &Parsian{
		invoice:   invoice,
		settings:  settings,
		transport: soap.NewClient(settings.Namespace),
	}
}

// WithTransport replaces the SOAP transport, mainly for tests.
func (p *Parsian) WithTransport(t soap.Caller) *Parsian {
	p.transport = t
	return p
}

func (p *Parsian) Name() string {
	return "parsian"
}

// Purchase registers the invoice with the bank and stores the issued
// token as the invoice's transaction id.
func (p *Parsian) Purchase(ctx context.Context) (string, error) {
	resp, err := p.transport.Call(ctx, p.settings.PurchaseURL, "SalePaymentRequest", p.purchaseData())
	if err != nil {
		return "", &TransportError{Driver: p.Name(), Op: "SalePaymentRequest", Err: err}
	}
	if len(resp) == 0 {
		return "", &TransportError{Driver: p.Name(), Op: "SalePaymentRequest", Err: ErrEmptyResponse}
	}

	status := resp.Get("Status")
	token := resp.Get("Token")
	if status != "0" || token == "" {
		return "", &PurchaseFailedError{Driver: p.Name(), Status: status, Message: resp.Get("Message")}
	}

	if err := p.invoice.SetTransactionID(token); err != nil {
		return "", err
	}

	return p.invoice.TransactionID(), nil
}

// Pay produces the POST-form redirect that carries the token to the
// bank's payment page.
func (p *Parsian) Pay() (*RedirectForm, error) {
	if p.invoice.TransactionID() == "" {
		return nil, ErrNoTransactionID
	}

	return &RedirectForm{
		URL:    p.settings.PaymentURL,
		Method: "POST",
		Fields: map[string]string{
			"RefId": p.invoice.TransactionID(),
		},
	}, nil
}

// Verify confirms the payment after the user returns from the bank.
// A non-zero callback status or missing token means the user cancelled
// or the bank redirected with a failure; no remote call is made then.
func (p *Parsian) Verify(ctx context.Context, cb Callback) (*Receipt, error) {
	status := cb.Get("status")
	token := cb.Get("Token")

	if status != "0" || token == "" {
		return nil, &InvalidPaymentError{Driver: p.Name(), Status: status, Message: "transaction cancelled by the user"}
	}

	// The local invoice may not survive the redirect round-trip; the
	// callback carries the token in that case.
	transactionID := p.invoice.TransactionID()
	if transactionID == "" {
		transactionID = token
	}

	data := map[string]any{
		"LoginAccount": p.settings.LoginAccount,
		"Token":        transactionID,
	}

	resp, err := p.transport.Call(ctx, p.settings.VerificationURL, "ConfirmPayment", data)
	if err != nil {
		return nil, &TransportError{Driver: p.Name(), Op: "ConfirmPayment", Err: err}
	}
	if len(resp) == 0 {
		return nil, &TransportError{Driver: p.Name(), Op: "ConfirmPayment", Err: ErrEmptyResponse}
	}

	rrn, _ := strconv.ParseInt(resp.Get("RRN"), 10, 64)
	if resp.Get("Status") != "0" || rrn <= 0 {
		return nil, &InvalidPaymentError{Driver: p.Name(), Status: resp.Get("Status"), Message: "bank rejected the confirmation"}
	}

	return NewReceipt(p.Name(), resp.Get("RRN")), nil
}

func (p *Parsian) purchaseData() map[string]any {
	description := p.settings.Description
	if d, ok := p.invoice.Detail("description").(string); ok && d != "" {
		description = d
	}

	return map[string]any{
		"LoginAccount":   p.settings.LoginAccount,
		"Amount":         p.invoice.Amount() * 10, // toman to rial
		"OrderId":        OrderID(p.invoice.UUID()),
		"CallBackUrl":    p.settings.CallbackURL,
		"AdditionalData": description,
	}
}
