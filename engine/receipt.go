package engine

import (
	"fmt"
	"time"

	"github.com/yeremiapane/smart-pos/models"
)

type ReceiptLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Receipt is the printable form of an order.
type Receipt struct {
	StoreName     string        `json:"store_name"`
	Address       string        `json:"address"`
	Title         string        `json:"title"`
	OrderID       string        `json:"order_id"`
	Date          time.Time     `json:"date"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      float64       `json:"subtotal"`
	TaxLabel      string        `json:"tax_label"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"payment_method"`
	Cash          bool          `json:"cash"`
	Received      float64       `json:"received"`
	Change        float64       `json:"change"`
	Footer        string        `json:"footer"`
}

// BuildReceipt lays out an order for printing with the store header from
// settings. The tax label shows the rate the order was priced at; orders
// saved before the rate was recorded fall back to the current setting.
func BuildReceipt(o models.Order, settings models.Settings) Receipt {
	rate := o.TaxRate
	if rate == 0 && o.Tax != 0 {
		rate = settings.TaxRate
	}
	r := Receipt{
		StoreName:     settings.StoreName,
		Address:       settings.Address,
		Title:         "ใบเสร็จรับเงิน/ใบกำกับภาษีอย่างย่อ",
		OrderID:       o.ID,
		Date:          o.CreatedAt,
		Lines:         make([]ReceiptLine, 0, len(o.Lines)),
		Subtotal:      o.Subtotal,
		TaxLabel:      fmt.Sprintf("ภาษี (%g%%)", rate),
		Tax:           o.Tax,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod.Label(),
		Cash:          o.PaymentMethod == models.PaymentMethodCash,
		Footer:        "ขอบคุณที่ใช้บริการ",
	}
	for _, l := range o.Lines {
		r.Lines = append(r.Lines, ReceiptLine{
			Name:     l.Product.Name,
			Quantity: l.Quantity,
			Amount:   l.LineTotal(),
		})
	}
	if r.Cash {
		if o.ReceivedAmount != nil {
			r.Received = *o.ReceivedAmount
		}
		r.Change = o.Change
	}
	return r
}
