package gateway

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParsianSettings configures the Parsian driver.
type ParsianSettings struct {
	PurchaseURL     string `validate:"required,url"`
	PaymentURL      string `validate:"required,url"`
	VerificationURL string `validate:"required,url"`
	Namespace       string `validate:"required"`
	LoginAccount    string `validate:"required"`
	CallbackURL     string `validate:"required,url"`
	Description     string
}

// Validate checks that every setting the driver will need is present.
func (s ParsianSettings) Validate() error {
	return validate.Struct(s)
}

// SadadSettings configures the Sadad driver.
type SadadSettings struct {
	PurchaseURL     string `validate:"required,url"`
	PaymentURL      string `validate:"required,url"`
	VerificationURL string `validate:"required,url"`
	Namespace       string `validate:"required"`
	TerminalID      string `validate:"required"`
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	CallbackURL     string `validate:"required,url"`
	Description     string
}

// Validate checks that every setting the driver will need is present.
func (s SadadSettings) Validate() error {
	return validate.Struct(s)
}
