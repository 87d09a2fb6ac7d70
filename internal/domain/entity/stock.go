package entity

import "time"

// StockSnapshot representa la existencia actual de un producto en una tienda (fila materializada).
// QuantityAvailable es siempre la suma de los movimientos confirmados del par (shop, product).
type StockSnapshot struct {
	ShopID            string
	ProductID         string
	QuantityAvailable int64
	ReorderLevel      int64
	LastUpdated       time.Time
	// Version se incrementa en cada escritura; 0 indica que la fila aún no existe.
	Version int64
}

// Initialized indica si la fila ya fue creada por un primer movimiento.
func (s *StockSnapshot) Initialized() bool {
	return s.Version > 0
}
