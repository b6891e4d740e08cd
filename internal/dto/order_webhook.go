package dto

// OrderWebhook mirrors the storefront's order notification payload,
// limited to the fields this bridge reads.
type OrderWebhook struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Customer  CustomerPayload   `json:"customer"`
	LineItems []LineItemPayload `json:"line_items"`
}

type CustomerPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LineItemPayload struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
	Price    string  `json:"price"`
	Title    string  `json:"title"`
}

type OrderWebhookResponse struct {
	Success bool  `json:"success"`
	SaleID  int64 `json:"sale_id"`
}
