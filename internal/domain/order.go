package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order is a storefront sales order as delivered by the order webhook.
// It is processed once and discarded; nothing here is persisted locally.
type Order struct {
	// Name is the external order reference, e.g. "#1001".
	Name      string
	Email     string
	Phone     string
	FirstName string
	LastName  string
	LineItems []LineItem
}

type LineItem struct {
	SKU      string
	Quantity float64
	Price    string
	Title    string
}

// CustomerName concatenates the customer's first and last name the way
// the ERP expects a single partner name field.
func (o Order) CustomerName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// UnitPrice parses the storefront's decimal price string.
func (li LineItem) UnitPrice() (decimal.Decimal, error) {
	return decimal.NewFromString(li.Price)
}
