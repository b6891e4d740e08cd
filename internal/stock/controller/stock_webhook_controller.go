package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockbridge/internal/dto"
)

type RelayStockUseCase interface {
	RelayStock(ctx context.Context, notification dto.StockWebhook) error
}

type StockWebhookController struct {
	useCase RelayStockUseCase
	logger  *zap.Logger
}

func NewStockWebhookController(useCase RelayStockUseCase, logger *zap.Logger) *StockWebhookController {
	return &StockWebhookController{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleStockWebhook always acknowledges with 200 once the payload
// decodes: the ERP retries a webhook that does not return success, and
// a retry storm on a transient failure is worse than a missed update.
func (c *StockWebhookController) HandleStockWebhook(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.StockWebhook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	if err := c.useCase.RelayStock(r.Context(), req); err != nil {
		logger.Error("stock relay failed",
			zap.String("sku", req.SKU),
			zap.Int64("productId", req.ProductID),
			zap.Error(err))
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *StockWebhookController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
