package order

import (
	"go.uber.org/zap"

	"stockbridge/internal/config"
	"stockbridge/internal/odoo"
	"stockbridge/internal/order/controller"
	"stockbridge/internal/order/usecase"
)

func NewModule(erp *odoo.Client, cfg *config.Config, logger *zap.Logger) *controller.OrderWebhookController {
	uc := usecase.NewRelayOrderUseCase(erp, logger)
	return controller.NewOrderWebhookController(uc, cfg.Shopify.WebhookSecret, logger)
}
