package gateway_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pardakht/gateway"
)

func TestNewInvoice(t *testing.T) {
	invoice := gateway.NewInvoice(1500)

	assert.NotEmpty(t, invoice.UUID())
	assert.Equal(t, int64(1500), invoice.Amount())
	assert.Empty(t, invoice.TransactionID())
}

func TestNewInvoiceWithUUID(t *testing.T) {
	invoice := gateway.NewInvoiceWithUUID("order-42", 1500)
	assert.Equal(t, "order-42", invoice.UUID())
}

func TestInvoiceDetails(t *testing.T) {
	invoice := gateway.NewInvoice(1500).
		SetDetail("description", "a book").
		SetDetail("payerId", 7)

	assert.Equal(t, "a book", invoice.Detail("description"))
	assert.Equal(t, 7, invoice.Detail("payerId"))
	assert.Nil(t, invoice.Detail("missing"))
}

func TestInvoiceTransactionID(t *testing.T) {
	t.Run("is set at most once", func(t *testing.T) {
		invoice := gateway.NewInvoice(1500)

		require.NoError(t, invoice.SetTransactionID("tok-1"))
		assert.Equal(t, "tok-1", invoice.TransactionID())

		assert.Error(t, invoice.SetTransactionID("tok-2"))
		assert.Equal(t, "tok-1", invoice.TransactionID())
	})

	t.Run("re-setting the same id is allowed", func(t *testing.T) {
		invoice := gateway.NewInvoice(1500)

		require.NoError(t, invoice.SetTransactionID("tok-1"))
		assert.NoError(t, invoice.SetTransactionID("tok-1"))
	})

	t.Run("rejects an empty id", func(t *testing.T) {
		invoice := gateway.NewInvoice(1500)
		assert.Error(t, invoice.SetTransactionID(""))
	})
}

func TestOrderID(t *testing.T) {
	// CRC-32 (IEEE) check value for "123456789".
	assert.Equal(t, uint32(0xCBF43926), gateway.OrderID("123456789"))

	invoice := gateway.NewInvoice(1500)
	assert.Equal(t, gateway.OrderID(invoice.UUID()), gateway.OrderID(invoice.UUID()))
}

func TestCallbackFromValues(t *testing.T) {
	values := url.Values{}
	values.Set("ResCode", "0")
	values.Set("SaleOrderId", "111")

	cb := gateway.CallbackFromValues(values)
	assert.Equal(t, "0", cb.Get("ResCode"))
	assert.Equal(t, "111", cb.Get("SaleOrderId"))
	assert.Empty(t, cb.Get("missing"))
}
