package dto

// CartItem is one line of the incoming cart. Only identity and quantity are
// trusted; prices come from the inventory service during the sale check.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutInput struct {
	CustomerID      string            `json:"customer_id"`
	CustomerInfo    map[string]string `json:"customer_info"`
	ShippingAddress map[string]string `json:"shipping_address"`
	CartItems       []CartItem        `json:"cart_items"`
	GSTType         string            `json:"gst_type"`
	PaymentMethod   string            `json:"payment_method"`
	ShippingCost    float64           `json:"shipping_cost"`
}
