package stock

import (
	"go.uber.org/zap"

	"stockbridge/internal/odoo"
	"stockbridge/internal/shopify"
	"stockbridge/internal/stock/controller"
	"stockbridge/internal/stock/usecase"
)

func NewModule(erp *odoo.Client, storefront *shopify.Client, logger *zap.Logger) *controller.StockWebhookController {
	uc := usecase.NewRelayStockUseCase(erp, storefront, logger)
	return controller.NewStockWebhookController(uc, logger)
}
