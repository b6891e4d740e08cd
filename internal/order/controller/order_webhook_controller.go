package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockbridge/internal/domain"
	"stockbridge/internal/dto"
	apperrors "stockbridge/internal/errors"
	"stockbridge/internal/shopify"
)

type RelayOrderUseCase interface {
	RelayOrder(ctx context.Context, order domain.Order) (int64, error)
}

type OrderWebhookController struct {
	useCase       RelayOrderUseCase
	webhookSecret string
	logger        *zap.Logger
}

func NewOrderWebhookController(useCase RelayOrderUseCase, webhookSecret string, logger *zap.Logger) *OrderWebhookController {
	return &OrderWebhookController{
		useCase:       useCase,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleOrderWebhook verifies the webhook signature over the raw body
// before doing anything else; a bad signature is rejected with no side
// effects.
func (c *OrderWebhookController) HandleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("reading webhook body failed", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	if !shopify.VerifyWebhook(c.webhookSecret, body, r.Header.Get(shopify.SignatureHeader)) {
		logger.Warn("webhook signature mismatch")
		authErr := apperrors.NewUnauthorizedError("invalid signature")
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Error()})
		return
	}

	var req dto.OrderWebhook
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	if validationErr := c.validateOrderWebhook(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}

	order := domain.Order{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.Customer.FirstName,
		LastName:  req.Customer.LastName,
	}
	for _, item := range req.LineItems {
		order.LineItems = append(order.LineItems, domain.LineItem{
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.Price,
			Title:    item.Title,
		})
	}

	saleID, err := c.useCase.RelayOrder(r.Context(), order)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderWebhookResponse{
		Success: true,
		SaleID:  saleID,
	})
}

func (c *OrderWebhookController) validateOrderWebhook(req dto.OrderWebhook) error {
	var details []apperrors.ValidationDetail

	if req.Email == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email is required",
		})
	}

	if len(req.LineItems) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "line_items",
			Message: "line_items must not be empty",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *OrderWebhookController) handleUseCaseError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNoValidProductsError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "NO_VALID_PRODUCTS",
			"message": err.Error(),
		})
		return
	}

	logger.Error("order relay failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

func (c *OrderWebhookController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
