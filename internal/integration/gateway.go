package integration

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// CreateSaleRequest is the sale-creation payload sent to the inventory
// service. The inventory service is the authoritative price and stock check;
// the storefront never recomputes totals.
type CreateSaleRequest struct {
	OrgID    string         `json:"org_id"`
	BranchID string         `json:"branch_id"`
	SaleType string         `json:"sale_type"`
	GSTType  string         `json:"gst_type"`
	Items    []SaleItemData `json:"sale_items"`
}

type SaleItemData struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	SKU             string  `json:"sku"`
	Quantity        int     `json:"quantity"`
	MRP             float64 `json:"mrp"`
	DiscountPercent float64 `json:"discount_percentage"`
}

// StockBatchRequest asks for the current counts of a page worth of products
// in one call.
type StockBatchRequest struct {
	OrgID      string   `json:"org_id"`
	BranchID   string   `json:"branch_id"`
	ProductIDs []string `json:"product_ids"`
}

// ProductStockDetail is the public per-product detail the inventory service
// exposes for product pages.
type ProductStockDetail struct {
	ProductID    string `json:"product_id"`
	Manufacturer string `json:"manufacturer"`
	TotalStock   int    `json:"total_stock"`
}

type InventoryGateway interface {
	// CreateSale returns an *apperr.InventoryConflictError carrying the
	// remote body verbatim when the sale is rejected, and an
	// *apperr.ServiceCommunicationError on any other failure.
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*model.Sale, error)
	GetStockBatch(ctx context.Context, req *StockBatchRequest) (map[string]int, error)
	GetPublicProductDetail(ctx context.Context, orgID, productID string) (*ProductStockDetail, error)
}

type CreatePaymentOrderRequest struct {
	OrgID    string  `json:"org_id"`
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type PaymentOrderResponse struct {
	PaymentOrderID string `json:"payment_order_id"`
	Provider       string `json:"provider"`
	Status         string `json:"status"`
}

type PaymentGateway interface {
	CreatePaymentOrder(ctx context.Context, req *CreatePaymentOrderRequest) (*PaymentOrderResponse, error)
}
