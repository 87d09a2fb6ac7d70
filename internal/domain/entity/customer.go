package entity

import "time"

// Customer representa un cliente de la tienda (ventas).
type Customer struct {
	ID        string
	ShopID    string
	Name      string
	Phone     string
	CreatedAt time.Time
}
