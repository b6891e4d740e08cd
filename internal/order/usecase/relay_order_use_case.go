package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stockbridge/internal/domain"
	apperrors "stockbridge/internal/errors"
)

type ERPClient interface {
	Login(ctx context.Context) (int64, error)
	ExecuteKw(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error
}

// RelayOrderUseCase mirrors one storefront order into the ERP as a
// confirmed sales order. Partners are matched by email and reused
// verbatim when found; name and phone are not updated on repeat orders.
// A confirmation failure after creation leaves an unconfirmed draft in
// the ERP, no compensating delete is issued.
type RelayOrderUseCase struct {
	erp    ERPClient
	logger *zap.Logger
}

func NewRelayOrderUseCase(erp ERPClient, logger *zap.Logger) *RelayOrderUseCase {
	return &RelayOrderUseCase{
		erp:    erp,
		logger: logger,
	}
}

type idRecord struct {
	ID int64 `json:"id"`
}

func (uc *RelayOrderUseCase) RelayOrder(ctx context.Context, order domain.Order) (int64, error) {
	uc.logger.Info("order relay started",
		zap.String("orderRef", order.Name),
		zap.String("email", order.Email),
		zap.Int("lineItemCount", len(order.LineItems)))

	uid, err := uc.erp.Login(ctx)
	if err != nil {
		return 0, err
	}

	partnerID, err := uc.resolvePartner(ctx, uid, order)
	if err != nil {
		return 0, err
	}

	lines, err := uc.resolveOrderLines(ctx, uid, order)
	if err != nil {
		return 0, err
	}

	if len(lines) == 0 {
		uc.logger.Warn("no line items matched a known product",
			zap.String("orderRef", order.Name))
		return 0, apperrors.NewNoValidProductsError("no line item matches a known product")
	}

	var saleID int64
	err = uc.erp.ExecuteKw(ctx, uid, "sale.order", "create", []interface{}{
		map[string]interface{}{
			"partner_id":       partnerID,
			"client_order_ref": order.Name,
			"order_line":       lines,
		},
	}, nil, &saleID)
	if err != nil {
		return 0, err
	}

	err = uc.erp.ExecuteKw(ctx, uid, "sale.order", "action_confirm", []interface{}{
		[]interface{}{saleID},
	}, nil, nil)
	if err != nil {
		// The draft order already exists; surfacing the error without
		// rollback is the accepted inconsistency window.
		return 0, err
	}

	uc.logger.Info("sales order created and confirmed",
		zap.String("orderRef", order.Name),
		zap.Int64("saleId", saleID))
	return saleID, nil
}

// resolvePartner performs at most one lookup by email per order. An
// existing partner id is reused as-is; otherwise one partner is created
// with the concatenated customer name.
func (uc *RelayOrderUseCase) resolvePartner(ctx context.Context, uid int64, order domain.Order) (int64, error) {
	var partners []idRecord
	err := uc.erp.ExecuteKw(ctx, uid, "res.partner", "search_read", []interface{}{
		[]interface{}{[]interface{}{"email", "=", order.Email}},
	}, map[string]interface{}{"limit": 1}, &partners)
	if err != nil {
		return 0, err
	}

	if len(partners) > 0 {
		uc.logger.Debug("partner matched by email", zap.Int64("partnerId", partners[0].ID))
		return partners[0].ID, nil
	}

	values := map[string]interface{}{
		"name":  order.CustomerName(),
		"email": order.Email,
	}
	if order.Phone != "" {
		values["phone"] = order.Phone
	}

	var partnerID int64
	err = uc.erp.ExecuteKw(ctx, uid, "res.partner", "create", []interface{}{values}, nil, &partnerID)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("partner created",
		zap.Int64("partnerId", partnerID),
		zap.String("email", order.Email))
	return partnerID, nil
}

// resolveOrderLines matches each line item to an ERP product by its
// internal reference code. Items with no match or an unparseable price
// are dropped, preserving the order of the rest.
func (uc *RelayOrderUseCase) resolveOrderLines(ctx context.Context, uid int64, order domain.Order) ([]interface{}, error) {
	lines := make([]interface{}, 0, len(order.LineItems))

	for _, item := range order.LineItems {
		sku := strings.TrimSpace(item.SKU)

		var products []idRecord
		err := uc.erp.ExecuteKw(ctx, uid, "product.product", "search_read", []interface{}{
			[]interface{}{[]interface{}{"default_code", "=", sku}},
		}, map[string]interface{}{"limit": 1}, &products)
		if err != nil {
			return nil, err
		}

		if len(products) == 0 {
			uc.logger.Warn("line item skipped, no product matches sku",
				zap.String("orderRef", order.Name),
				zap.String("sku", sku))
			continue
		}

		price, err := item.UnitPrice()
		if err != nil {
			uc.logger.Warn("line item skipped, price is not parseable",
				zap.String("orderRef", order.Name),
				zap.String("sku", sku),
				zap.String("price", item.Price))
			continue
		}

		// (0, 0, values) is the ERP command to create a line in place.
		lines = append(lines, []interface{}{0, 0, map[string]interface{}{
			"product_id":      products[0].ID,
			"product_uom_qty": item.Quantity,
			"price_unit":      price.InexactFloat64(),
			"name":            item.Title,
		}})
	}

	return lines, nil
}
