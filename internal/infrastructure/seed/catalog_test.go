package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/memory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/seed"
)

const catalogJSON = `{
  "shopId": "shop-demo",
  "products": [
    {"sku": "RICE-5", "name": "Rice 5kg", "costPrice": "4.50", "sellingPrice": 6},
    {"sku": "OIL-1", "name": "Oil 1L", "costPrice": 2, "sellingPrice": 3, "inactive": true}
  ],
  "suppliers": [{"name": "Wholesale Co", "phone": "555-0100"}],
  "customers": [{"name": "Walk-in"}]
}`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndApply_MemoryStore(t *testing.T) {
	cat, err := seed.Load(writeCatalog(t, catalogJSON))
	require.NoError(t, err)

	store := memory.NewStore(0)
	sum, err := seed.Apply(context.Background(), cat, store.CatalogSink())
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Products: 2, Suppliers: 1, Customers: 1}, sum)

	rice := cat.ProductID(cat.Products[0])
	p, ok := store.Product("shop-demo", rice)
	require.True(t, ok)
	assert.Equal(t, "4.5", p.CostPrice.String())
	assert.True(t, p.IsActive())

	oil, ok := store.Product("shop-demo", cat.ProductID(cat.Products[1]))
	require.True(t, ok)
	assert.False(t, oil.IsActive())

	// solo el activo aparece en lecturas, sin snapshot todavía
	items, err := store.InventoryLevels().List(context.Background(), "shop-demo", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(0), items[0].QuantityAvailable)
}

func TestProductID_Deterministic(t *testing.T) {
	a := &seed.Catalog{ShopID: "s1"}
	b := &seed.Catalog{ShopID: "s2"}
	p := seed.ProductSeed{SKU: "X"}
	assert.Equal(t, a.ProductID(p), a.ProductID(p))
	assert.NotEqual(t, a.ProductID(p), b.ProductID(p))
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"sin tienda":   `{"products": []}`,
		"sku repetido": `{"shopId": "s", "products": [{"sku": "A", "name": "a"}, {"sku": "A", "name": "b"}]}`,
		"precio":       `{"shopId": "s", "products": [{"sku": "A", "name": "a", "costPrice": -1}]}`,
		"id no uuid":   `{"shopId": "s", "products": [{"id": "x", "sku": "A", "name": "a"}]}`,
		"proveedor":    `{"shopId": "s", "suppliers": [{"name": ""}]}`,
		"json roto":    `{"shopId": `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := seed.Load(writeCatalog(t, body))
			assert.Error(t, err)
		})
	}
}
