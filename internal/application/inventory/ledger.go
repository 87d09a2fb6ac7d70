package inventory

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// LedgerUseCase es el único punto por el que cambia la existencia de un producto.
// Cada operación abre una transacción (TxRunner.Run), bloquea las filas de snapshot (SELECT FOR UPDATE),
// escribe snapshot + movimiento y hace Commit o Rollback como unidad. Nunca reintenta.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	metrics  ledgerMetrics
	now      func() time.Time
}

// NewLedgerUseCase construye el motor del ledger.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		log:      log.Component("ledger"),
		metrics:  newLedgerMetrics(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AdjustStockInput entrada de un ajuste manual.
// Quantity se interpreta según Type: IN suma, OUT resta, ADJUSTMENT fija la cantidad.
type AdjustStockInput struct {
	ShopID      string
	ActorID     string
	ProductID   string
	Quantity    int64
	Type        entity.MovementType
	Source      entity.MovementSource
	ReferenceID *string
}

// PurchaseLine línea de una recepción de compra.
type PurchaseLine struct {
	ProductID string
	Quantity  int64
	CostPrice decimal.Decimal
}

// ReceivePurchaseInput entrada de una recepción de compra.
type ReceivePurchaseInput struct {
	ShopID     string
	ActorID    string
	SupplierID *string
	Items      []PurchaseLine
}

// SaleLine línea de una venta.
type SaleLine struct {
	ProductID    string
	Quantity     int64
	SellingPrice decimal.Decimal
}

// RecordSaleInput entrada de una venta.
type RecordSaleInput struct {
	ShopID        string
	ActorID       string
	CustomerID    *string
	PaymentMethod entity.PaymentMethod
	Items         []SaleLine
}

// AdjustStock aplica un ajuste a un producto y anexa un movimiento con la cantidad original.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (res *dto.AdjustStockResponse, err error) {
	ctx, span := uc.start(ctx, "ledger.adjust_stock", in.ShopID)
	defer func() { uc.finish(span, "adjust_stock", in.ShopID, err) }()

	if err := validateAdjust(in); err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		if _, err := activeProduct(ctx, r, in.ShopID, in.ProductID); err != nil {
			return err
		}
		stock, err := r.Stock.GetForUpdate(ctx, in.ShopID, in.ProductID)
		if err != nil {
			return err
		}
		previous := stock.QuantityAvailable
		next, err := inventory.NextQuantity(in.ProductID, previous, in.Quantity, in.Type)
		if err != nil {
			return err
		}
		stock.QuantityAvailable = next
		stock.LastUpdated = now
		if err := r.Stock.Save(ctx, stock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:          uuid.NewString(),
			ShopID:      in.ShopID,
			ProductID:   in.ProductID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Source:      in.Source,
			ReferenceID: in.ReferenceID,
			CreatedBy:   in.ActorID,
			CreatedAt:   now,
		}
		if err := r.Movements.Append(ctx, mov); err != nil {
			return err
		}
		res = &dto.AdjustStockResponse{ProductID: in.ProductID, PreviousQty: previous, CurrentQty: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.movements.Add(ctx, 1)
	uc.log.Info().
		Str("shop_id", in.ShopID).
		Str("product_id", in.ProductID).
		Str("type", string(in.Type)).
		Int64("previous_qty", res.PreviousQty).
		Int64("current_qty", res.CurrentQty).
		Msg("ajuste de stock registrado")
	return res, nil
}

// ReceivePurchase registra la compra, suma cada línea al snapshot y actualiza el costo promedio ponderado.
// Todas las líneas y la cabecera se confirman juntas; un fallo en cualquier línea revierte la compra completa.
func (uc *LedgerUseCase) ReceivePurchase(ctx context.Context, in ReceivePurchaseInput) (res *dto.PurchaseResponse, err error) {
	ctx, span := uc.start(ctx, "ledger.receive_purchase", in.ShopID)
	defer func() { uc.finish(span, "receive_purchase", in.ShopID, err) }()

	if err := validatePurchase(in); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, it := range in.Items {
		total = total.Add(inventory.LineTotal(it.Quantity, it.CostPrice))
	}
	now := uc.now()
	purchaseID := uuid.NewString()

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		if in.SupplierID != nil {
			sup, err := r.Suppliers.GetByID(ctx, in.ShopID, *in.SupplierID)
			if err != nil {
				return err
			}
			if sup == nil {
				return domain.NewNotFound("supplier", *in.SupplierID)
			}
		}

		// Bloqueo en orden de product_id para no crear ciclos de espera con otras transacciones.
		products := make(map[string]*entity.Product)
		stocks := make(map[string]*entity.StockSnapshot)
		for _, id := range sortedProductIDs(purchaseProductIDs(in.Items)) {
			p, err := activeProduct(ctx, r, in.ShopID, id)
			if err != nil {
				return err
			}
			s, err := r.Stock.GetForUpdate(ctx, in.ShopID, id)
			if err != nil {
				return err
			}
			products[id] = p
			stocks[id] = s
		}

		if err := r.Purchases.Create(ctx, &entity.Purchase{
			ID:         purchaseID,
			ShopID:     in.ShopID,
			SupplierID: in.SupplierID,
			TotalCost:  total,
			CreatedBy:  in.ActorID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		for _, it := range in.Items {
			if err := r.Purchases.CreateItem(ctx, &entity.PurchaseItem{
				ID:         uuid.NewString(),
				PurchaseID: purchaseID,
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				CostPrice:  it.CostPrice,
				LineTotal:  inventory.LineTotal(it.Quantity, it.CostPrice),
			}); err != nil {
				return err
			}

			stock, product := stocks[it.ProductID], products[it.ProductID]
			newCost := inventory.CostCalculator(stock.QuantityAvailable, product.CostPrice, it.Quantity, it.CostPrice)
			if err := r.Products.UpdateCostPrice(ctx, in.ShopID, it.ProductID, newCost); err != nil {
				return err
			}
			product.CostPrice = newCost

			next, err := inventory.NextQuantity(it.ProductID, stock.QuantityAvailable, it.Quantity, entity.MovementTypeIN)
			if err != nil {
				return err
			}
			stock.QuantityAvailable = next
			stock.LastUpdated = now
			if err := r.Stock.Save(ctx, stock); err != nil {
				return err
			}
			if err := r.Movements.Append(ctx, &entity.InventoryMovement{
				ID:          uuid.NewString(),
				ShopID:      in.ShopID,
				ProductID:   it.ProductID,
				Type:        entity.MovementTypeIN,
				Quantity:    it.Quantity,
				Source:      entity.MovementSourcePurchase,
				ReferenceID: &purchaseID,
				CreatedBy:   in.ActorID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.movements.Add(ctx, int64(len(in.Items)))
	uc.log.Info().
		Str("shop_id", in.ShopID).
		Str("purchase_id", purchaseID).
		Int("items", len(in.Items)).
		Str("total_cost", total.String()).
		Msg("compra recibida")
	return &dto.PurchaseResponse{PurchaseID: purchaseID, TotalCost: total, ItemCount: len(in.Items)}, nil
}

// RecordSale registra una venta con verificación de stock en dos fases.
// Fase 1: bloquea y lee todos los snapshots; cualquier faltante aborta sin escribir nada.
// Fase 2: escribe cabecera y líneas, re-verificando cada snapshot justo antes de descontar.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, in RecordSaleInput) (res *dto.SaleResponse, err error) {
	ctx, span := uc.start(ctx, "ledger.record_sale", in.ShopID)
	defer func() { uc.finish(span, "record_sale", in.ShopID, err) }()

	if err := validateSale(in); err != nil {
		return nil, err
	}

	total := decimal.Zero
	requested := make(map[string]int64)
	// saturated marca productos cuya suma de líneas no cabe en int64: ninguna existencia la cubre.
	saturated := make(map[string]bool)
	for _, it := range in.Items {
		total = total.Add(inventory.LineTotal(it.Quantity, it.SellingPrice))
		if requested[it.ProductID] > math.MaxInt64-it.Quantity {
			requested[it.ProductID] = math.MaxInt64
			saturated[it.ProductID] = true
			continue
		}
		requested[it.ProductID] += it.Quantity
	}
	now := uc.now()
	saleID := uuid.NewString()

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		if in.CustomerID != nil {
			cust, err := r.Customers.GetByID(ctx, in.ShopID, *in.CustomerID)
			if err != nil {
				return err
			}
			if cust == nil {
				return domain.NewNotFound("customer", *in.CustomerID)
			}
		}

		// Fase 1: líneas repetidas del mismo producto se suman antes de comparar.
		for _, id := range sortedProductIDs(requested) {
			if _, err := activeProduct(ctx, r, in.ShopID, id); err != nil {
				return err
			}
			stock, err := r.Stock.GetForUpdate(ctx, in.ShopID, id)
			if err != nil {
				return err
			}
			if saturated[id] || stock.QuantityAvailable < requested[id] {
				return domain.NewInsufficientStock(id, requested[id], stock.QuantityAvailable)
			}
		}

		// Fase 2
		if err := r.Sales.Create(ctx, &entity.Sale{
			ID:            saleID,
			ShopID:        in.ShopID,
			CustomerID:    in.CustomerID,
			PaymentMethod: in.PaymentMethod,
			TotalAmount:   total,
			CreatedBy:     in.ActorID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		for _, it := range in.Items {
			stock, err := r.Stock.GetForUpdate(ctx, in.ShopID, it.ProductID)
			if err != nil {
				return err
			}
			if stock.QuantityAvailable < it.Quantity {
				uc.metrics.anomalies.Add(ctx, 1)
				uc.log.Error().
					Str("shop_id", in.ShopID).
					Str("sale_id", saleID).
					Str("product_id", it.ProductID).
					Int64("requested", it.Quantity).
					Int64("available", stock.QuantityAvailable).
					Msg("anomalía: stock consumido entre verificación y descuento dentro de la transacción")
				return domain.ErrRaceConditionDetected
			}

			if err := r.Sales.CreateItem(ctx, &entity.SaleItem{
				ID:           uuid.NewString(),
				SaleID:       saleID,
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				SellingPrice: it.SellingPrice,
				LineTotal:    inventory.LineTotal(it.Quantity, it.SellingPrice),
			}); err != nil {
				return err
			}
			next, err := inventory.NextQuantity(it.ProductID, stock.QuantityAvailable, it.Quantity, entity.MovementTypeOUT)
			if err != nil {
				return err
			}
			stock.QuantityAvailable = next
			stock.LastUpdated = now
			if err := r.Stock.Save(ctx, stock); err != nil {
				return err
			}
			if err := r.Movements.Append(ctx, &entity.InventoryMovement{
				ID:          uuid.NewString(),
				ShopID:      in.ShopID,
				ProductID:   it.ProductID,
				Type:        entity.MovementTypeOUT,
				Quantity:    it.Quantity,
				Source:      entity.MovementSourceSale,
				ReferenceID: &saleID,
				CreatedBy:   in.ActorID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.movements.Add(ctx, int64(len(in.Items)))
	uc.log.Info().
		Str("shop_id", in.ShopID).
		Str("sale_id", saleID).
		Int("items", len(in.Items)).
		Str("total_amount", total.String()).
		Msg("venta registrada")
	return &dto.SaleResponse{SaleID: saleID, TotalAmount: total, ItemCount: len(in.Items)}, nil
}

// SetReorderLevel fija el nivel de reorden de un snapshot existente. No cambia la cantidad ni anexa movimiento.
func (uc *LedgerUseCase) SetReorderLevel(ctx context.Context, shopID, productID string, level int64) (res *dto.InventoryItemResponse, err error) {
	ctx, span := uc.start(ctx, "ledger.set_reorder_level", shopID)
	defer func() { uc.finish(span, "set_reorder_level", shopID, err) }()

	if shopID == "" {
		return nil, domain.NewValidation("shopId", "es obligatorio")
	}
	if err := validateUUID("productId", productID); err != nil {
		return nil, err
	}
	if level < 0 {
		return nil, domain.NewValidation("reorderLevel", "no puede ser negativo")
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		p, err := activeProduct(ctx, r, shopID, productID)
		if err != nil {
			return err
		}
		stock, err := r.Stock.GetForUpdate(ctx, shopID, productID)
		if err != nil {
			return err
		}
		if !stock.Initialized() {
			return domain.NewNotFound("stock", productID)
		}
		stock.ReorderLevel = level
		if err := r.Stock.Save(ctx, stock); err != nil {
			return err
		}
		last := stock.LastUpdated
		res = &dto.InventoryItemResponse{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			CostPrice:         p.CostPrice,
			SellingPrice:      p.SellingPrice,
			QuantityAvailable: stock.QuantityAvailable,
			ReorderLevel:      stock.ReorderLevel,
			LastUpdated:       &last,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *LedgerUseCase) start(ctx context.Context, name, shopID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("shop.id", shopID)))
}

// finish cierra el span y registra métricas. Los errores de negocio esperados van a warn;
// RaceConditionDetected, Timeout e infraestructura van a error.
func (uc *LedgerUseCase) finish(span trace.Span, op, shopID string, err error) {
	defer span.End()
	ctx := context.Background()
	if err == nil {
		uc.metrics.operations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
		span.SetStatus(codes.Ok, "")
		return
	}

	kind := errorKind(err)
	uc.metrics.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("kind", kind),
	))
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	switch kind {
	case "validation", "not_found", "insufficient_stock":
		uc.log.Warn().Err(err).Str("op", op).Str("shop_id", shopID).Msg("operación rechazada")
	default:
		uc.log.Error().Err(err).Str("op", op).Str("shop_id", shopID).Str("kind", kind).Msg("operación revertida")
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrRaceConditionDetected):
		return "race_condition"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	default:
		return "infrastructure"
	}
}

// activeProduct carga el producto y exige que exista en la tienda y esté ACTIVE.
func activeProduct(ctx context.Context, r Repos, shopID, productID string) (*entity.Product, error) {
	p, err := r.Products.GetByID(ctx, shopID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive() {
		return nil, domain.NewNotFound("product", productID)
	}
	return p, nil
}

func purchaseProductIDs(items []PurchaseLine) map[string]int64 {
	ids := make(map[string]int64, len(items))
	for _, it := range items {
		ids[it.ProductID] += it.Quantity
	}
	return ids
}

func sortedProductIDs(ids map[string]int64) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
