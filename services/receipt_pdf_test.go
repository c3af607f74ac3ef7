package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/smart-pos/engine"
)

func TestReceiptPDFRender(t *testing.T) {
	r := engine.Receipt{
		StoreName: "Gemini Cafe",
		Title:     "Receipt",
		OrderID:   "ORD-1",
		Date:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Lines: []engine.ReceiptLine{
			{Name: "Americano", Quantity: 3, Amount: 180},
		},
		Subtotal:      180,
		TaxLabel:      "Tax (7%)",
		Tax:           12.6,
		Total:         192.6,
		PaymentMethod: "Cash",
		Cash:          true,
		Received:      200,
		Change:        7.4,
		Footer:        "Thank you",
	}

	var buf bytes.Buffer
	require.NoError(t, NewReceiptPDF("").Render(&buf, r))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestReceiptPDFMissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := NewReceiptPDF("/nonexistent/font.ttf").Render(&buf, engine.Receipt{OrderID: "ORD-9"})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
