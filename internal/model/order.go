package model

import "time"

const OrderStatusPendingPayment = "PENDING_PAYMENT"

// SaleItem is one line of a sale as returned by the inventory service. The
// order stores these verbatim rather than the client's cart, so totals and
// prices are always the remote service's verified values.
type SaleItem struct {
	ProductID       string  `bson:"product_id" json:"product_id"`
	ProductName     string  `bson:"product_name" json:"product_name"`
	SKU             string  `bson:"sku" json:"sku"`
	HSN             string  `bson:"hsn" json:"hsn"`
	BatchNumber     string  `bson:"batch_number" json:"batch_number"`
	Quantity        int     `bson:"quantity" json:"quantity"`
	MRPPerItem      float64 `bson:"mrp_per_item" json:"mrp_per_item"`
	DiscountPercent float64 `bson:"discount_percent" json:"discount_percent"`
	TaxProfileID    string  `bson:"tax_profile_id" json:"tax_profile_id"`
}

// Sale is the authoritative transaction record produced by the inventory
// service during checkout.
type Sale struct {
	SaleID         string     `json:"sale_id"`
	OrganizationID string     `json:"organization_id"`
	BranchID       string     `json:"branch_id"`
	SaleType       string     `json:"sale_type"`
	GSTType        string     `json:"gst_type"`
	GrandTotal     float64    `json:"grand_total"`
	Items          []SaleItem `json:"items"`
}

// Order is the local record of a storefront checkout. Items are an immutable
// snapshot of the remote sale. PENDING_PAYMENT is the only status created
// here; later transitions belong to the payment flow.
type Order struct {
	OrderID         string            `bson:"order_id" json:"order_id"`
	OrganizationID  string            `bson:"organization_id" json:"organization_id"`
	BranchID        string            `bson:"branch_id" json:"branch_id"`
	CustomerID      string            `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	CustomerInfo    map[string]string `bson:"customer_info" json:"customer_info"`
	ShippingAddress map[string]string `bson:"shipping_address" json:"shipping_address"`
	Items           []SaleItem        `bson:"items" json:"items"`
	GrandTotal      float64           `bson:"grand_total" json:"grand_total"`
	PaymentID       string            `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Status          string            `bson:"status" json:"status"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}
