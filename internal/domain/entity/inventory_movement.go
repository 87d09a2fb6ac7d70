package entity

import "time"

// MovementType dirección o naturaleza del cambio de cantidad.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada (suma)
	MovementTypeOUT        MovementType = "OUT"        // salida (resta)
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste absoluto (fija la cantidad)
)

// Valid indica si el tipo es uno de los soportados.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// MovementSource motivo de negocio del movimiento.
type MovementSource string

// Orígenes de movimiento.
const (
	MovementSourcePurchase MovementSource = "PURCHASE"
	MovementSourceSale     MovementSource = "SALE"
	MovementSourceDamage   MovementSource = "DAMAGE"
	MovementSourceExpired  MovementSource = "EXPIRED"
	MovementSourceManual   MovementSource = "MANUAL"
)

// Valid indica si el origen es uno de los soportados.
func (s MovementSource) Valid() bool {
	switch s {
	case MovementSourcePurchase, MovementSourceSale, MovementSourceDamage, MovementSourceExpired, MovementSourceManual:
		return true
	}
	return false
}

// InventoryMovement registro inmutable de auditoría de un cambio de cantidad.
// Quantity es siempre positiva; la dirección la lleva Type.
type InventoryMovement struct {
	ID          string
	ShopID      string
	ProductID   string
	Type        MovementType
	Quantity    int64
	Source      MovementSource
	ReferenceID *string // compra, venta o solicitud de ajuste que lo originó
	CreatedBy   string
	CreatedAt   time.Time
}

// SignedDelta devuelve la cantidad con signo para mostrar en el historial (negativa en OUT).
func (m *InventoryMovement) SignedDelta() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
