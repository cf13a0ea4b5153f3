package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pardakht/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("PAYMENT_DRIVER", "sadad")
	t.Setenv("PARSIAN_LOGIN_ACCOUNT", "login-1")
	t.Setenv("PARSIAN_CALLBACK_URL", "https://shop.example.ir/callback/parsian")
	t.Setenv("SADAD_TERMINAL_ID", "term-1")
	t.Setenv("SADAD_USERNAME", "user-1")
	t.Setenv("SADAD_PASSWORD", "pass-1")
	t.Setenv("SADAD_CALLBACK_URL", "https://shop.example.ir/callback/sadad")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sadad", cfg.Default)

	assert.Equal(t, "login-1", cfg.Parsian.LoginAccount)
	assert.Equal(t, "https://shop.example.ir/callback/parsian", cfg.Parsian.CallbackURL)
	// Endpoint defaults point at the production gateways.
	assert.Equal(t, "https://pec.shaparak.ir/NewIPGServices/Sale/SaleService.asmx", cfg.Parsian.PurchaseURL)
	assert.NotEmpty(t, cfg.Parsian.Namespace)

	assert.Equal(t, "term-1", cfg.Sadad.TerminalID)
	assert.Equal(t, "user-1", cfg.Sadad.Username)
	assert.Equal(t, "pass-1", cfg.Sadad.Password)
	assert.Equal(t, "https://bpm.shaparak.ir/pgwchannel/startpay.mellat", cfg.Sadad.PaymentURL)
}

func TestLoadValidatesAtDriverConstruction(t *testing.T) {
	t.Setenv("PAYMENT_DRIVER", "parsian")

	cfg, err := config.Load()
	require.NoError(t, err)

	// Credentials are absent; Load itself stays permissive.
	assert.Error(t, cfg.Parsian.Validate())
}
