package model

import "time"

type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// DeriveStockStatus maps a raw quantity onto the coarse display status. The
// low-stock badge is computed downstream from the live count, not here.
func DeriveStockStatus(quantity int) StockStatus {
	if quantity <= 0 {
		return StockStatusOutOfStock
	}
	return StockStatusInStock
}

// Product is the storefront-owned presentation record for a catalog item,
// keyed by (organization_id, product_id). Name, MRP and stock fields are a
// cache of inventory-owned data; everything else is owned here.
type Product struct {
	OrganizationID  string       `bson:"organization_id" json:"organization_id"`
	ProductID       string       `bson:"product_id" json:"product_id"`
	ProductName     string       `bson:"product_name" json:"product_name"`
	MRP             float64      `bson:"mrp" json:"mrp"`
	CategoryName    string       `bson:"category_name" json:"category_name"`
	TaxProfileID    string       `bson:"tax_profile_id" json:"tax_profile_id"`
	GSTType         string       `bson:"gst_type" json:"gst_type"`
	RichDescription string       `bson:"rich_description" json:"rich_description"`
	Highlights      string       `bson:"highlights" json:"highlights"`
	Tags            []string     `bson:"tags" json:"tags"`
	Slug            string       `bson:"slug" json:"slug"`
	Visible         bool         `bson:"visible" json:"visible"`
	Images          []ImageAsset `bson:"images" json:"images"`
	StockLevel      int          `bson:"stock_level" json:"stock_level"`
	CurrentStatus   StockStatus  `bson:"current_status" json:"current_status"`
	Dimensions      *Dimensions  `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Weight          *Weight      `bson:"weight,omitempty" json:"weight,omitempty"`
	CreatedAt       time.Time    `bson:"created_at" json:"created_at"`
}

// ImageAsset is one logical product image stored as four resolution
// variants. Owned exclusively by its parent product.
type ImageAsset struct {
	AssetID      string `bson:"asset_id" json:"asset_id"`
	OriginalURL  string `bson:"original_url" json:"original_url"`
	ThumbnailURL string `bson:"thumbnail_url" json:"thumbnail_url"`
	MediumURL    string `bson:"medium_url" json:"medium_url"`
	LargeURL     string `bson:"large_url" json:"large_url"`
	AltText      string `bson:"alt_text" json:"alt_text"`
	DisplayOrder int    `bson:"display_order" json:"display_order"`
}

// Dimensions in centimeters.
type Dimensions struct {
	Length float64 `bson:"length" json:"length"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

// Weight in kilograms.
type Weight struct {
	Value float64 `bson:"value" json:"value"`
}

// Branch is a fulfillment location under an organization. Checkout and the
// batch stock lookup source inventory from the first branch listed.
type Branch struct {
	BranchID       string `bson:"branch_id" json:"branch_id"`
	OrganizationID string `bson:"organization_id" json:"organization_id"`
	Name           string `bson:"name" json:"name"`
}
