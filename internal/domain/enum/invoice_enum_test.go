package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusString(t *testing.T) {
	assert.Equal(t, "Draft", InvoiceStatusDraft.String())
	assert.Equal(t, "Mailed", InvoiceStatusMailed.String())
	assert.Equal(t, "Canceled", InvoiceStatusCanceled.String())

	// Values outside the known range can come back from a corrupted column
	assert.Equal(t, "Unknown", InvoiceStatus(99).String())
	assert.Equal(t, "Unknown", InvoiceStatus(-1).String())
}

func TestInvoiceSeriesString(t *testing.T) {
	assert.Equal(t, "IN", InvoiceSeriesIN.String())
	assert.Equal(t, "PF", InvoiceSeriesPF.String())
	assert.Equal(t, "CN", InvoiceSeriesCN.String())

	assert.Equal(t, "Unknown", InvoiceSeries(7).String())
	assert.Equal(t, "Unknown", InvoiceSeries(-1).String())
}

func TestInvoiceStatusIsValid(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.IsValid())
	assert.True(t, InvoiceStatusCanceled.IsValid())
	assert.False(t, InvoiceStatus(5).IsValid())
}
