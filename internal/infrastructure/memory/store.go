// Package memory implementa los puertos del ledger en memoria para desarrollo local y tests.
// Las transacciones se serializan con un semáforo de un solo cupo y confirman reemplazando
// el estado por una copia preparada, así un error deja el estado confirmado intacto.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

var errReadOnly = errors.New("memory: escritura fuera de transacción")

type key struct {
	shop string
	id   string
}

// state es una foto completa de los datos. Se clona al iniciar cada transacción.
type state struct {
	products      map[key]entity.Product
	suppliers     map[key]entity.Supplier
	customers     map[key]entity.Customer
	stocks        map[key]entity.StockSnapshot
	movements     []entity.InventoryMovement
	purchases     []entity.Purchase
	purchaseItems []entity.PurchaseItem
	sales         []entity.Sale
	saleItems     []entity.SaleItem
}

func newState() *state {
	return &state{
		products:  make(map[key]entity.Product),
		suppliers: make(map[key]entity.Supplier),
		customers: make(map[key]entity.Customer),
		stocks:    make(map[key]entity.StockSnapshot),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:      make(map[key]entity.Product, len(s.products)),
		suppliers:     make(map[key]entity.Supplier, len(s.suppliers)),
		customers:     make(map[key]entity.Customer, len(s.customers)),
		stocks:        make(map[key]entity.StockSnapshot, len(s.stocks)),
		movements:     append([]entity.InventoryMovement(nil), s.movements...),
		purchases:     append([]entity.Purchase(nil), s.purchases...),
		purchaseItems: append([]entity.PurchaseItem(nil), s.purchaseItems...),
		sales:         append([]entity.Sale(nil), s.sales...),
		saleItems:     append([]entity.SaleItem(nil), s.saleItems...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	return c
}

// Store guarda el estado confirmado y serializa las transacciones.
type Store struct {
	sem       chan struct{}
	mu        sync.RWMutex
	committed *state
	timeout   time.Duration
}

// NewStore crea un store vacío. timeout > 0 acota la espera del turno más la ejecución de cada transacción.
func NewStore(timeout time.Duration) *Store {
	return &Store{
		sem:       make(chan struct{}, 1),
		committed: newState(),
		timeout:   timeout,
	}
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no devuelve error
// y el plazo no venció.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("esperando transacción: %w: %w", domain.ErrTimeout, ctx.Err())
	}
	defer func() { <-s.sem }()

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(ctx, reposFor(txRef{st: staged})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("confirmando transacción: %w: %w", domain.ErrTimeout, err)
	}

	s.mu.Lock()
	s.committed = staged
	s.mu.Unlock()
	return nil
}

// InventoryLevels devuelve el repositorio de proyecciones sobre el estado confirmado.
func (s *Store) InventoryLevels() *InventoryLevelRepo {
	return &InventoryLevelRepo{ref: storeRef{s: s}}
}

// Movements devuelve el log de movimientos confirmado (solo lectura fuera de Run).
func (s *Store) Movements() *MovementRepo {
	return &MovementRepo{ref: storeRef{s: s}}
}

// Stock devuelve el snapshot confirmado (solo lectura fuera de Run).
func (s *Store) Stock() *StockRepo {
	return &StockRepo{ref: storeRef{s: s}}
}

// PutProduct registra o reemplaza un producto del catálogo.
func (s *Store) PutProduct(p entity.Product) {
	s.exclusive(func(st *state) { st.products[key{p.ShopID, p.ID}] = p })
}

// PutSupplier registra o reemplaza un proveedor.
func (s *Store) PutSupplier(v entity.Supplier) {
	s.exclusive(func(st *state) { st.suppliers[key{v.ShopID, v.ID}] = v })
}

// PutCustomer registra o reemplaza un cliente.
func (s *Store) PutCustomer(v entity.Customer) {
	s.exclusive(func(st *state) { st.customers[key{v.ShopID, v.ID}] = v })
}

// exclusive modifica el estado confirmado esperando el turno, para no perderse en el swap de una transacción.
func (s *Store) exclusive(fn func(st *state)) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.committed)
}

// Product devuelve el producto confirmado.
func (s *Store) Product(shopID, id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.committed.products[key{shopID, id}]
	return p, ok
}

// Counts devuelve cuántas compras y ventas hay confirmadas.
func (s *Store) Counts() (purchases, sales int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.committed.purchases), len(s.committed.sales)
}

// stateRef abstrae de dónde leen los repositorios: la copia de la transacción o el estado confirmado.
type stateRef interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// txRef no necesita mutex: el semáforo garantiza un único escritor y la copia no es visible para otros.
type txRef struct{ st *state }

func (r txRef) read(fn func(st *state) error) error  { return fn(r.st) }
func (r txRef) write(fn func(st *state) error) error { return fn(r.st) }

type storeRef struct{ s *Store }

func (r storeRef) read(fn func(st *state) error) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return fn(r.s.committed)
}

func (r storeRef) write(func(st *state) error) error { return errReadOnly }

func reposFor(ref stateRef) inventory.Repos {
	return inventory.Repos{
		Stock:     &StockRepo{ref: ref},
		Movements: &MovementRepo{ref: ref},
		Products:  &ProductRepo{ref: ref},
		Suppliers: &SupplierRepo{ref: ref},
		Customers: &CustomerRepo{ref: ref},
		Purchases: &PurchaseRepo{ref: ref},
		Sales:     &SaleRepo{ref: ref},
	}
}
