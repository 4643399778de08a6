package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one order line in the shape courier integrations expect.
type OrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	HSN          string  `json:"hsn"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// OrderDetails is the fulfillment view of an order: customer and address
// fields flattened for label generation, plus the aggregate shipping package
// profile. All package figures are rounded to two decimal places.
type OrderDetails struct {
	OrderID         string    `json:"order_id"`
	OrderDate       time.Time `json:"order_date"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email"`
	AddressStreet   string    `json:"address_street"`
	AddressStreet2  string    `json:"address_street2"`
	AddressCity     string    `json:"address_city"`
	AddressState    string    `json:"address_state"`
	AddressZip      string    `json:"address_zip"`
	PaymentMethod   string    `json:"payment_method"`
	TotalOrderValue int       `json:"total_order_value"`

	Items []OrderItem `json:"items"`

	// Package profile in kilograms and centimeters.
	PackageWeight decimal.Decimal `json:"package_weight"`
	PackageLength decimal.Decimal `json:"package_length"`
	PackageWidth  decimal.Decimal `json:"package_width"`
	PackageHeight decimal.Decimal `json:"package_height"`
}
