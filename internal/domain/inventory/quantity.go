package inventory

import (
	"fmt"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// NextQuantity aplica un movimiento a la cantidad actual.
// IN suma delta, OUT resta delta y ADJUSTMENT fija la cantidad en delta (absoluto, no relativo).
// Devuelve *domain.StockError si el resultado sería negativo.
func NextQuantity(productID string, current, delta int64, t entity.MovementType) (int64, error) {
	if delta <= 0 {
		return 0, domain.NewValidation("quantity", "debe ser un entero positivo")
	}
	var next int64
	switch t {
	case entity.MovementTypeIN:
		next = current + delta
		if next < current {
			return 0, domain.NewValidation("quantity", "desborda la existencia")
		}
	case entity.MovementTypeOUT:
		next = current - delta
	case entity.MovementTypeADJUSTMENT:
		next = delta
	default:
		return 0, domain.NewValidation("type", fmt.Sprintf("tipo de movimiento %q no soportado", t))
	}
	if next < 0 {
		return 0, domain.NewInsufficientStock(productID, delta, current)
	}
	return next, nil
}
