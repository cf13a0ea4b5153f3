package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config selects and configures the available drivers.
type Config struct {
	// Default is the driver used when no name is given.
	Default string
	Parsian ParsianSettings
	Sadad   SadadSettings
}

// Driver builds the named driver bound to the given invoice. Settings
// are validated here, so a misconfigured gateway fails before any
// remote call is made.
func (c Config) Driver(name string, invoice *Invoice) (Driver, error) {
	if name == "" {
		name = c.Default
	}

	switch name {
	case "parsian":
		if err := c.Parsian.Validate(); err != nil {
			return nil, fmt.Errorf("parsian settings: %w", err)
		}
		return NewParsian(invoice, c.Parsian), nil
	case "sadad":
		if err := c.Sadad.Validate(); err != nil {
			return nil, fmt.Errorf("sadad settings: %w", err)
		}
		return NewSadad(invoice, c.Sadad), nil
	default:
		return nil, fmt.Errorf("unsupported payment driver: %s", name)
	}
}

// VerifiedHook is called after a payment is fully verified and settled.
type VerifiedHook func(driver Driver, invoice *Invoice, receipt *Receipt)

// Gateway drives the three-phase protocol end to end and logs each
// phase. It is the in-library face the hosting application talks to.
type Gateway struct {
	cfg      Config
	logger   *zap.Logger
	verified VerifiedHook
}

// New creates a gateway facade. A nil logger is replaced with a no-op.
func New(cfg Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{cfg: cfg, logger: logger}
}

// WithVerifiedHook registers a hook fired on every verified payment.
func (g *Gateway) WithVerifiedHook(hook VerifiedHook) *Gateway {
	g.verified = hook
	return g
}

// Purchase registers the invoice with the named driver's bank and
// returns the driver plus the redirect instruction for the host to act
// on. The caller keeps the driver to Verify with after the redirect, or
// rebuilds one from the same config and invoice.
func (g *Gateway) Purchase(ctx context.Context, driverName string, invoice *Invoice) (Driver, *RedirectForm, error) {
	driver, err := g.cfg.Driver(driverName, invoice)
	if err != nil {
		return nil, nil, err
	}

	transactionID, err := driver.Purchase(ctx)
	if err != nil {
		g.logger.Warn("purchase failed",
			zap.String("driver", driver.Name()),
			zap.String("invoice", invoice.UUID()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	form, err := driver.Pay()
	if err != nil {
		return nil, nil, err
	}

	g.logger.Info("purchase registered",
		zap.String("driver", driver.Name()),
		zap.String("invoice", invoice.UUID()),
		zap.String("transaction_id", transactionID),
	)

	return driver, form, nil
}

// Verify confirms the transaction the bank redirected back for and
// returns the receipt. The invoice must carry the same unique id (and,
// for token drivers, transaction id if known) as the purchase.
func (g *Gateway) Verify(ctx context.Context, driverName string, invoice *Invoice, cb Callback) (*Receipt, error) {
	driver, err := g.cfg.Driver(driverName, invoice)
	if err != nil {
		return nil, err
	}

	receipt, err := driver.Verify(ctx, cb)
	if err != nil {
		g.logger.Warn("verify failed",
			zap.String("driver", driver.Name()),
			zap.String("invoice", invoice.UUID()),
			zap.Error(err),
		)
		return nil, err
	}

	g.logger.Info("payment verified",
		zap.String("driver", driver.Name()),
		zap.String("invoice", invoice.UUID()),
		zap.String("reference_id", receipt.ReferenceID()),
	)

	if g.verified != nil {
		g.verified(driver, invoice, receipt)
	}

	return receipt, nil
}
