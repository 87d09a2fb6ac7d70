package memory

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// CatalogSink adapta el store al destino de siembra de catálogo.
type CatalogSink struct {
	s *Store
}

// CatalogSink devuelve el destino de siembra sobre este store.
func (s *Store) CatalogSink() *CatalogSink {
	return &CatalogSink{s: s}
}

func (c *CatalogSink) SeedProduct(_ context.Context, p entity.Product) error {
	c.s.PutProduct(p)
	return nil
}

func (c *CatalogSink) SeedSupplier(_ context.Context, v entity.Supplier) error {
	c.s.PutSupplier(v)
	return nil
}

func (c *CatalogSink) SeedCustomer(_ context.Context, v entity.Customer) error {
	c.s.PutCustomer(v)
	return nil
}
