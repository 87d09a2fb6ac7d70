package entity

import "time"

// Supplier representa un proveedor de la tienda (compras).
type Supplier struct {
	ID        string
	ShopID    string
	Name      string
	Phone     string
	CreatedAt time.Time
}
