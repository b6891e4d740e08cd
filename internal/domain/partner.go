package domain

// Partner is the ERP's customer/contact record (res.partner), keyed by
// email for the purposes of this bridge.
type Partner struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Product is the ERP product reference resolved for a line item. The
// internal reference code (default_code) equals the storefront SKU.
type Product struct {
	ID          int64
	DefaultCode string
}
