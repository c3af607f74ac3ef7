package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in workflow order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusServed,
	OrderStatusPaid,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the text shown on station screens.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusNew:
		return "ใหม่"
	case OrderStatusPreparing:
		return "กำลังเตรียม"
	case OrderStatusReady:
		return "พร้อมเสิร์ฟ"
	case OrderStatusServed:
		return "เสิร์ฟแล้ว"
	case OrderStatusPaid:
		return "ชำระแล้ว"
	case OrderStatusCancelled:
		return "ยกเลิก"
	}
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodQRCode     PaymentMethod = "qr_code"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

// PaymentMethods lists the methods offered at checkout.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodQRCode,
	PaymentMethodCreditCard,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the text printed on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "เงินสด"
	case PaymentMethodQRCode:
		return "QR Code"
	case PaymentMethodCreditCard:
		return "บัตรเครดิต"
	}
	return string(m)
}

// Order is a finalized checkout. Lines never change after creation; only
// Status is updated.
type Order struct {
	ID             string        `json:"id"`
	Lines          []OrderLine   `json:"lines"`
	Subtotal       float64       `json:"subtotal"`
	Tax            float64       `json:"tax"`
	TaxRate        float64       `json:"tax_rate"`
	Total          float64       `json:"total"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	ReceivedAmount *float64      `json:"received_amount,omitempty"`
	Change         float64       `json:"change"`
	CashierID      string        `json:"cashier_id"`
	CreatedAt      time.Time     `json:"created_at"`
	TotalPrepTime  int           `json:"total_prep_time"`
	Status         OrderStatus   `json:"status"`
}

// ItemCount returns the number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}
