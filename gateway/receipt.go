package gateway

import "time"

// Receipt is the proof of a settled payment: the gateway that processed
// it and the bank-assigned settlement reference.
type Receipt struct {
	gatewayName string
	referenceID string
	date        time.Time
}

// NewReceipt creates a receipt for the given gateway and bank reference.
func NewReceipt(gatewayName, referenceID string) *Receipt {
	return &Receipt{
		gatewayName: gatewayName,
		referenceID: referenceID,
		date:        time.Now(),
	}
}

// GatewayName returns the name of the gateway that settled the payment.
func (r *Receipt) GatewayName() string {
	return r.gatewayName
}

// ReferenceID returns the bank settlement reference. Empty only when the
// bank did not report one.
func (r *Receipt) ReferenceID() string {
	return r.referenceID
}

// Date returns when the receipt was issued.
func (r *Receipt) Date() time.Time {
	return r.date
}
