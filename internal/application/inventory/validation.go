package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
)

// Las validaciones corren antes de abrir la transacción.

func validateUUID(field, v string) error {
	if _, err := uuid.Parse(v); err != nil {
		return domain.NewValidation(field, "debe ser un UUID")
	}
	return nil
}

func validateScope(shopID, actorID string) error {
	if shopID == "" {
		return domain.NewValidation("shopId", "es obligatorio")
	}
	if actorID == "" {
		return domain.NewValidation("actor", "es obligatorio")
	}
	return nil
}

func validateAdjust(in AdjustStockInput) error {
	if err := validateScope(in.ShopID, in.ActorID); err != nil {
		return err
	}
	if err := validateUUID("productId", in.ProductID); err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return domain.NewValidation("quantity", "debe ser un entero positivo")
	}
	if !in.Type.Valid() {
		return domain.NewValidation("type", "debe ser IN, OUT o ADJUSTMENT")
	}
	if !in.Source.Valid() {
		return domain.NewValidation("source", "debe ser PURCHASE, SALE, DAMAGE, EXPIRED o MANUAL")
	}
	if in.ReferenceID != nil {
		if err := validateUUID("referenceId", *in.ReferenceID); err != nil {
			return err
		}
	}
	return nil
}

func validatePurchase(in ReceivePurchaseInput) error {
	if err := validateScope(in.ShopID, in.ActorID); err != nil {
		return err
	}
	if in.SupplierID != nil {
		if err := validateUUID("supplierId", *in.SupplierID); err != nil {
			return err
		}
	}
	if len(in.Items) == 0 {
		return domain.NewValidation("items", "debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if err := validateUUID(fmt.Sprintf("items[%d].productId", i), it.ProductID); err != nil {
			return err
		}
		if it.Quantity <= 0 {
			return domain.NewValidation(fmt.Sprintf("items[%d].quantity", i), "debe ser un entero positivo")
		}
		if it.CostPrice.IsNegative() {
			return domain.NewValidation(fmt.Sprintf("items[%d].costPrice", i), "no puede ser negativo")
		}
	}
	return nil
}

func validateSale(in RecordSaleInput) error {
	if err := validateScope(in.ShopID, in.ActorID); err != nil {
		return err
	}
	if in.CustomerID != nil {
		if err := validateUUID("customerId", *in.CustomerID); err != nil {
			return err
		}
	}
	if !in.PaymentMethod.Valid() {
		return domain.NewValidation("paymentMethod", "debe ser CASH, UPI, CARD o BANK")
	}
	if len(in.Items) == 0 {
		return domain.NewValidation("items", "debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if err := validateUUID(fmt.Sprintf("items[%d].productId", i), it.ProductID); err != nil {
			return err
		}
		if it.Quantity <= 0 {
			return domain.NewValidation(fmt.Sprintf("items[%d].quantity", i), "debe ser un entero positivo")
		}
		if it.SellingPrice.IsNegative() {
			return domain.NewValidation(fmt.Sprintf("items[%d].sellingPrice", i), "no puede ser negativo")
		}
	}
	return nil
}
