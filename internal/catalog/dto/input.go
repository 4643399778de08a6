package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

// StockEventInput carries one stock-change event from the inventory service.
type StockEventInput struct {
	OrganizationID string  `json:"organization_id"`
	BranchID       string  `json:"branch_id"`
	ProductID      string  `json:"product_id"`
	NewStock       int     `json:"new_total_stock"`
	ProductName    string  `json:"product_name"`
	MRP            float64 `json:"mrp"`
	TaxProfileID   string  `json:"tax_profile_id"`
	GSTType        string  `json:"gst_type"`
	Category       string  `json:"category"`
}

// EnrichProductInput is a sparse patch: empty strings and nil slices leave
// the stored value untouched. Visible has no unset state and is always
// written.
type EnrichProductInput struct {
	Visible         bool              `json:"visible"`
	RichDescription string            `json:"rich_description"`
	Highlights      string            `json:"highlights"`
	CategoryID      string            `json:"category_id"`
	Slug            string            `json:"slug"`
	Tags            []string          `json:"tags"`
	Dimensions      *model.Dimensions `json:"dimensions"`
	Weight          *model.Weight     `json:"weight"`
}

type ListAvailableInput struct {
	OrganizationID string
	CategoryID     string
	PageSize       int
	Cursor         string
}
