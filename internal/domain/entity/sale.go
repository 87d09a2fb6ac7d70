package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago de la venta.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodBank PaymentMethod = "BANK"
)

// Valid indica si el medio de pago es uno de los soportados.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodBank:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta.
type Sale struct {
	ID            string
	ShopID        string
	CustomerID    *string
	PaymentMethod PaymentMethod
	TotalAmount   decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleItem representa una línea de la venta.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     int64
	SellingPrice decimal.Decimal
	LineTotal    decimal.Decimal
}
