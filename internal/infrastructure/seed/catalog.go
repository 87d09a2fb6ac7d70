// Package seed carga un catálogo inicial (productos, proveedores y clientes) de una tienda
// desde un archivo JSON y lo aplica sobre cualquier almacenamiento que implemente Sink.
// Nunca toca existencias: el stock solo entra por el ledger.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// namespace para IDs deterministas: re-sembrar el mismo catálogo produce los mismos IDs.
var namespace = uuid.MustParse("5b0f8f3e-6f1c-4c0e-9a51-3f2d1c7e4a10")

// Catalog archivo de catálogo de una tienda.
type Catalog struct {
	ShopID    string        `json:"shopId"`
	Products  []ProductSeed `json:"products"`
	Suppliers []PartySeed   `json:"suppliers"`
	Customers []PartySeed   `json:"customers"`
}

// ProductSeed producto a sembrar. ID vacío se deriva de shopId + sku.
type ProductSeed struct {
	ID           string          `json:"id,omitempty"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Inactive     bool            `json:"inactive,omitempty"`
}

// PartySeed proveedor o cliente. ID vacío se deriva de shopId + nombre.
type PartySeed struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Sink destino del catálogo (PostgreSQL o el store en memoria). Las operaciones son upserts.
type Sink interface {
	SeedProduct(ctx context.Context, p entity.Product) error
	SeedSupplier(ctx context.Context, s entity.Supplier) error
	SeedCustomer(ctx context.Context, c entity.Customer) error
}

// Summary cuántas entidades se aplicaron.
type Summary struct {
	Products  int
	Suppliers int
	Customers int
}

// Load lee y valida un catálogo desde path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate revisa campos obligatorios, SKUs duplicados y precios negativos.
func (c *Catalog) Validate() error {
	if strings.TrimSpace(c.ShopID) == "" {
		return fmt.Errorf("catálogo: shopId es obligatorio")
	}
	seen := make(map[string]struct{}, len(c.Products))
	for i, p := range c.Products {
		if strings.TrimSpace(p.SKU) == "" || strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("catálogo: products[%d] requiere sku y name", i)
		}
		if _, dup := seen[p.SKU]; dup {
			return fmt.Errorf("catálogo: sku %q repetido", p.SKU)
		}
		seen[p.SKU] = struct{}{}
		if p.CostPrice.IsNegative() || p.SellingPrice.IsNegative() {
			return fmt.Errorf("catálogo: products[%d] con precio negativo", i)
		}
		if p.ID != "" {
			if _, err := uuid.Parse(p.ID); err != nil {
				return fmt.Errorf("catálogo: products[%d].id no es un UUID", i)
			}
		}
	}
	for i, s := range c.Suppliers {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("catálogo: suppliers[%d] requiere name", i)
		}
	}
	for i, cu := range c.Customers {
		if strings.TrimSpace(cu.Name) == "" {
			return fmt.Errorf("catálogo: customers[%d] requiere name", i)
		}
	}
	return nil
}

// ProductID devuelve el ID estable de un producto del catálogo.
func (c *Catalog) ProductID(p ProductSeed) string {
	if p.ID != "" {
		return p.ID
	}
	return uuid.NewSHA1(namespace, []byte(c.ShopID+"|product|"+p.SKU)).String()
}

func (c *Catalog) partyID(kind string, p PartySeed) string {
	if p.ID != "" {
		return p.ID
	}
	return uuid.NewSHA1(namespace, []byte(c.ShopID+"|"+kind+"|"+p.Name)).String()
}

// Apply siembra el catálogo en sink. Se detiene en el primer error.
func Apply(ctx context.Context, c *Catalog, sink Sink) (Summary, error) {
	var sum Summary
	now := time.Now().UTC()
	for _, p := range c.Products {
		status := entity.ProductStatusActive
		if p.Inactive {
			status = entity.ProductStatusInactive
		}
		err := sink.SeedProduct(ctx, entity.Product{
			ID:           c.ProductID(p),
			ShopID:       c.ShopID,
			SKU:          p.SKU,
			Name:         p.Name,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return sum, fmt.Errorf("sembrar producto %s: %w", p.SKU, err)
		}
		sum.Products++
	}
	for _, s := range c.Suppliers {
		err := sink.SeedSupplier(ctx, entity.Supplier{
			ID: c.partyID("supplier", s), ShopID: c.ShopID, Name: s.Name, Phone: s.Phone, CreatedAt: now,
		})
		if err != nil {
			return sum, fmt.Errorf("sembrar proveedor %s: %w", s.Name, err)
		}
		sum.Suppliers++
	}
	for _, cu := range c.Customers {
		err := sink.SeedCustomer(ctx, entity.Customer{
			ID: c.partyID("customer", cu), ShopID: c.ShopID, Name: cu.Name, Phone: cu.Phone, CreatedAt: now,
		})
		if err != nil {
			return sum, fmt.Errorf("sembrar cliente %s: %w", cu.Name, err)
		}
		sum.Customers++
	}
	return sum, nil
}
