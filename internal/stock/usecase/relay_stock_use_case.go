package usecase

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"stockbridge/internal/dto"
	apperrors "stockbridge/internal/errors"
	"stockbridge/internal/odoo"
)

type ERPClient interface {
	Login(ctx context.Context) (int64, error)
	ExecuteKw(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error
}

type StorefrontClient interface {
	FindInventoryItemBySKU(ctx context.Context, sku string) (int64, error)
	SetInventoryLevel(ctx context.Context, inventoryItemID, available int64) error
}

// RelayStockUseCase propagates an ERP stock change to the storefront's
// inventory record for the matching SKU. The set is absolute and
// last-write-wins; concurrent notifications for the same SKU are not
// serialized.
type RelayStockUseCase struct {
	erp        ERPClient
	storefront StorefrontClient
	logger     *zap.Logger
}

func NewRelayStockUseCase(erp ERPClient, storefront StorefrontClient, logger *zap.Logger) *RelayStockUseCase {
	return &RelayStockUseCase{
		erp:        erp,
		storefront: storefront,
		logger:     logger,
	}
}

// RelayStock handles both notification shapes: a SKU given directly, or
// a product id that needs one extra read for its internal reference
// code. Returning nil on a missing SKU or inventory item is deliberate,
// those are stop conditions, not failures.
func (uc *RelayStockUseCase) RelayStock(ctx context.Context, notification dto.StockWebhook) error {
	quantity, ok := notification.EffectiveQuantity()
	if !ok {
		uc.logger.Warn("stock notification carries no quantity",
			zap.String("sku", notification.SKU),
			zap.Int64("productId", notification.ProductID))
		return nil
	}

	sku := strings.TrimSpace(notification.SKU)
	if sku == "" {
		if notification.ProductID == 0 {
			uc.logger.Warn("stock notification carries neither sku nor product id")
			return nil
		}

		resolved, err := uc.lookupSKU(ctx, notification.ProductID)
		if err != nil {
			return err
		}
		if resolved == "" {
			uc.logger.Warn("product has no internal reference code, skipping",
				zap.Int64("productId", notification.ProductID))
			return nil
		}
		sku = resolved
	}

	uc.logger.Info("stock relay started",
		zap.String("sku", sku),
		zap.Float64("quantity", quantity))

	itemID, err := uc.storefront.FindInventoryItemBySKU(ctx, sku)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			uc.logger.Warn("sku not found on storefront, no update attempted",
				zap.String("sku", sku))
			return nil
		}
		return err
	}

	// The storefront inventory API rejects fractional stock.
	available := int64(math.Floor(quantity))
	if err := uc.storefront.SetInventoryLevel(ctx, itemID, available); err != nil {
		return err
	}

	uc.logger.Info("stock synchronized",
		zap.String("sku", sku),
		zap.Int64("available", available))
	return nil
}

type productReference struct {
	ID          int64       `json:"id"`
	DefaultCode odoo.String `json:"default_code"`
}

// lookupSKU reads the product's internal reference code from the ERP
// and trims surrounding whitespace before use.
func (uc *RelayStockUseCase) lookupSKU(ctx context.Context, productID int64) (string, error) {
	uid, err := uc.erp.Login(ctx)
	if err != nil {
		return "", err
	}

	var products []productReference
	err = uc.erp.ExecuteKw(ctx, uid, "product.product", "read", []interface{}{
		[]interface{}{productID},
	}, map[string]interface{}{"fields": []string{"default_code"}}, &products)
	if err != nil {
		return "", err
	}

	if len(products) == 0 {
		return "", nil
	}
	return strings.TrimSpace(string(products[0].DefaultCode)), nil
}
