package dto

// StockWebhook covers both notification shapes the ERP sends: either the
// SKU directly with new_qty, or a product id with quantity and/or
// available_quantity. Pointer fields distinguish absent from zero.
type StockWebhook struct {
	SKU               string   `json:"sku"`
	NewQty            *float64 `json:"new_qty"`
	ProductID         int64    `json:"product_id"`
	Quantity          *float64 `json:"quantity"`
	AvailableQuantity *float64 `json:"available_quantity"`
}

// EffectiveQuantity picks the quantity the notification carries:
// new_qty for the SKU shape, otherwise quantity with available_quantity
// as the fallback.
func (w StockWebhook) EffectiveQuantity() (float64, bool) {
	if w.NewQty != nil {
		return *w.NewQty, true
	}
	if w.Quantity != nil {
		return *w.Quantity, true
	}
	if w.AvailableQuantity != nil {
		return *w.AvailableQuantity, true
	}
	return 0, false
}
