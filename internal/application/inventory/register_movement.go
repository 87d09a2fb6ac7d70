package inventory

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// AdjustFromRequest adapta el request HTTP al caso de uso AdjustStock(ctx, AdjustStockInput).
// shopID y actorID vienen del token, nunca del body.
func (uc *LedgerUseCase) AdjustFromRequest(ctx context.Context, shopID, actorID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	return uc.AdjustStock(ctx, AdjustStockInput{
		ShopID:      shopID,
		ActorID:     actorID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Type:        entity.MovementType(in.Type),
		Source:      entity.MovementSource(in.Source),
		ReferenceID: in.ReferenceID,
	})
}

// PurchaseFromRequest adapta el request HTTP al caso de uso ReceivePurchase.
func (uc *LedgerUseCase) PurchaseFromRequest(ctx context.Context, shopID, actorID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	items := make([]PurchaseLine, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, PurchaseLine{ProductID: it.ProductID, Quantity: it.Quantity, CostPrice: it.CostPrice})
	}
	return uc.ReceivePurchase(ctx, ReceivePurchaseInput{
		ShopID:     shopID,
		ActorID:    actorID,
		SupplierID: in.SupplierID,
		Items:      items,
	})
}

// SaleFromRequest adapta el request HTTP al caso de uso RecordSale.
func (uc *LedgerUseCase) SaleFromRequest(ctx context.Context, shopID, actorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	items := make([]SaleLine, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, SaleLine{ProductID: it.ProductID, Quantity: it.Quantity, SellingPrice: it.SellingPrice})
	}
	return uc.RecordSale(ctx, RecordSaleInput{
		ShopID:        shopID,
		ActorID:       actorID,
		CustomerID:    in.CustomerID,
		PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
		Items:         items,
	})
}
