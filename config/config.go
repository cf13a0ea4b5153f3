package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pardakht/gateway"
)

// Load reads gateway configuration from a .env file and environment
// variables. Endpoint defaults point at the production Shaparak
// gateways; credentials have no defaults and are checked when a driver
// is built, not here.
func Load() (*gateway.Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PAYMENT_DRIVER", "parsian")

	viper.SetDefault("PARSIAN_PURCHASE_URL", "https://pec.shaparak.ir/NewIPGServices/Sale/SaleService.asmx")
	viper.SetDefault("PARSIAN_PAYMENT_URL", "https://pec.shaparak.ir/NewIPG/")
	viper.SetDefault("PARSIAN_VERIFICATION_URL", "https://pec.shaparak.ir/NewIPGServices/Confirm/ConfirmService.asmx")
	viper.SetDefault("PARSIAN_NAMESPACE", "https://pec.Shaparak.ir/NewIPGServices/Sale/SaleService")

	viper.SetDefault("SADAD_PURCHASE_URL", "https://bpm.shaparak.ir/pgwchannel/services/pgw")
	viper.SetDefault("SADAD_PAYMENT_URL", "https://bpm.shaparak.ir/pgwchannel/startpay.mellat")
	viper.SetDefault("SADAD_VERIFICATION_URL", "https://bpm.shaparak.ir/pgwchannel/services/pgw")
	viper.SetDefault("SADAD_NAMESPACE", "http://interfaces.core.sw.bps.com/")

	cfg := &gateway.Config{
		Default: viper.GetString("PAYMENT_DRIVER"),
		Parsian: gateway.ParsianSettings{
			PurchaseURL:     viper.GetString("PARSIAN_PURCHASE_URL"),
			PaymentURL:      viper.GetString("PARSIAN_PAYMENT_URL"),
			VerificationURL: viper.GetString("PARSIAN_VERIFICATION_URL"),
			Namespace:       viper.GetString("PARSIAN_NAMESPACE"),
			LoginAccount:    viper.GetString("PARSIAN_LOGIN_ACCOUNT"),
			CallbackURL:     viper.GetString("PARSIAN_CALLBACK_URL"),
			Description:     viper.GetString("PARSIAN_DESCRIPTION"),
		},
		Sadad: gateway.SadadSettings{
			PurchaseURL:     viper.GetString("SADAD_PURCHASE_URL"),
			PaymentURL:      viper.GetString("SADAD_PAYMENT_URL"),
			VerificationURL: viper.GetString("SADAD_VERIFICATION_URL"),
			Namespace:       viper.GetString("SADAD_NAMESPACE"),
			TerminalID:      viper.GetString("SADAD_TERMINAL_ID"),
			Username:        viper.GetString("SADAD_USERNAME"),
			Password:        viper.GetString("SADAD_PASSWORD"),
			CallbackURL:     viper.GetString("SADAD_CALLBACK_URL"),
			Description:     viper.GetString("SADAD_DESCRIPTION"),
		},
	}

	return cfg, nil
}
