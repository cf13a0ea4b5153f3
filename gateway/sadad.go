package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pardakht/pkg/soap"
)

// Sadad implements the Driver interface for the Sadad gateway.
// Settle flow: bpPayRequest issues a token, the user pays on the bank
// page, then bpVerifyRequest plus bpSettleRequest must both succeed
// before the money counts as captured. Any failure after a successful
// verify triggers a compensating bpReversalRequest.
type Sadad struct {
	invoice   *Invoice
	settings  SadadSettings
	transport soap.Caller
	logger    *zap.Logger
}

// NewSadad creates a Sadad driver bound to the given invoice.
func NewSadad(invoice *Invoice, settings SadadSettings) *Sadad {
	return &Sadad{
		invoice:   invoice,
		settings:  settings,
		transport: soap.NewClient(settings.Namespace),
		logger:    zap.NewNop(),
	}
}

// WithTransport replaces the SOAP transport, mainly for tests.
func (s *Sadad) WithTransport(t soap.Caller) *Sadad {
	s.transport = t
	return s
}

// WithLogger sets the logger used for best-effort reversal reporting.
func (s *Sadad) WithLogger(logger *zap.Logger) *Sadad {
	s.logger = logger
	return s
}

func (s *Sadad) Name() string {
	return "sadad"
}

// Purchase registers the invoice with the bank. The response is a
// "code,token" pair; code "0" means the token was issued.
func (s *Sadad) Purchase(ctx context.Context) (string, error) {
	resp, err := s.transport.Call(ctx, s.settings.PurchaseURL, "bpPayRequest", s.purchaseData())
	if err != nil {
		return "", &TransportError{Driver: s.Name(), Op: "bpPayRequest", Err: err}
	}

	result := resp.Get("return")
	if result == "" {
		return "", &TransportError{Driver: s.Name(), Op: "bpPayRequest", Err: ErrEmptyResponse}
	}

	parts := strings.SplitN(result, ",", 2)
	if parts[0] != "0" || len(parts) < 2 || parts[1] == "" {
		return "", &PurchaseFailedError{Driver: s.Name(), Status: parts[0], Message: result}
	}

	if err := s.invoice.SetTransactionID(parts[1]); err != nil {
		return "", err
	}

	return s.invoice.TransactionID(), nil
}

// Pay produces the POST-form redirect that carries the token to the
// bank's payment page.
func (s *Sadad) Pay() (*RedirectForm, error) {
	if s.invoice.TransactionID() == "" {
		return nil, ErrNoTransactionID
	}

	return &RedirectForm{
		URL:    s.settings.PaymentURL,
		Method: "POST",
		Fields: map[string]string{
			"RefId": s.invoice.TransactionID(),
		},
	}, nil
}

// Verify confirms and settles the payment. Both bpVerifyRequest and
// bpSettleRequest must return "0"; otherwise a reversal is attempted
// once before the failure is surfaced.
func (s *Sadad) Verify(ctx context.Context, cb Callback) (*Receipt, error) {
	resCode := cb.Get("ResCode")
	if resCode != "0" {
		return nil, &InvalidPaymentError{Driver: s.Name(), Status: resCode, Message: "transaction was not successful"}
	}

	saleOrderID := cb.Get("SaleOrderId")
	saleReferenceID := cb.Get("SaleReferenceId")
	if saleOrderID == "" || saleReferenceID == "" {
		return nil, &InvalidPaymentError{Driver: s.Name(), Status: resCode, Message: "callback is missing correlation fields"}
	}

	data := s.verificationData(saleOrderID, saleReferenceID)

	verifyResp, err := s.transport.Call(ctx, s.settings.VerificationURL, "bpVerifyRequest", data)
	if err != nil {
		return nil, &TransportError{Driver: s.Name(), Op: "bpVerifyRequest", Err: err}
	}
	if code := verifyResp.Get("return"); code != "0" {
		s.reverse(ctx, data)
		return nil, &InvalidPaymentError{Driver: s.Name(), Status: code, Message: "bank rejected the verify request"}
	}

	// Verify succeeded, so from here on every failure must attempt a
	// reversal before surfacing.
	settleResp, err := s.transport.Call(ctx, s.settings.VerificationURL, "bpSettleRequest", data)
	if err != nil {
		s.reverse(ctx, data)
		return nil, &TransportError{Driver: s.Name(), Op: "bpSettleRequest", Err: err}
	}
	if code := settleResp.Get("return"); code != "0" {
		s.reverse(ctx, data)
		return nil, &InvalidPaymentError{Driver: s.Name(), Status: code, Message: "bank rejected the settle request"}
	}

	return NewReceipt(s.Name(), saleReferenceID), nil
}

// reverse issues the compensating reversal. Its own failure never masks
// the failure that triggered it; it is only logged.
func (s *Sadad) reverse(ctx context.Context, data map[string]any) {
	resp, err := s.transport.Call(ctx, s.settings.VerificationURL, "bpReversalRequest", data)
	if err != nil {
		s.logger.Warn("sadad reversal request failed", zap.Error(err))
		return
	}
	if code := resp.Get("return"); code != "0" {
		s.logger.Warn("sadad reversal request rejected", zap.String("code", code))
	}
}

func (s *Sadad) verificationData(saleOrderID, saleReferenceID string) map[string]any {
	return map[string]any{
		"terminalId":      s.settings.TerminalID,
		"userName":        s.settings.Username,
		"userPassword":    s.settings.Password,
		"orderId":         saleOrderID,
		"saleOrderId":     saleOrderID,
		"saleReferenceId": saleReferenceID,
	}
}

func (s *Sadad) purchaseData() map[string]any {
	description := s.settings.Description
	if d, ok := s.invoice.Detail("description").(string); ok && d != "" {
		description = d
	}

	payerID := "0"
	if p := s.invoice.Detail("payerId"); p != nil {
		payerID = fmt.Sprint(p)
	}

	now := time.Now()

	return map[string]any{
		"terminalId":     s.settings.TerminalID,
		"userName":       s.settings.Username,
		"userPassword":   s.settings.Password,
		"callBackUrl":    s.settings.CallbackURL,
		"amount":         s.invoice.Amount() * 10, // toman to rial
		"localDate":      now.Format("20060102"),
		"localTime":      now.Format("150405"),
		"orderId":        OrderID(s.invoice.UUID()),
		"additionalData": description,
		"payerId":        payerID,
	}
}
