package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

// ProductWithStock is one row of the public listing: catalog presentation
// data joined with the live inventory count.
type ProductWithStock struct {
	ProductID    string             `json:"product_id"`
	ProductName  string             `json:"product_name"`
	CategoryName string             `json:"category_name"`
	MRP          float64            `json:"mrp"`
	Slug         string             `json:"slug"`
	Images       []model.ImageAsset `json:"images"`
	StockLevel   int                `json:"stock_level"`
	InStock      bool               `json:"in_stock"`
	LowStock     bool               `json:"low_stock"`
}

type ProductWithStockPage struct {
	Items      []ProductWithStock `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasNext    bool               `json:"has_next"`
}

// PublicProductDetail is the combined product-page payload: presentation
// data from the catalog plus manufacturer and live stock from inventory.
type PublicProductDetail struct {
	ProductID       string             `json:"product_id"`
	Name            string             `json:"name"`
	GenericName     string             `json:"generic_name"`
	Manufacturer    string             `json:"manufacturer"`
	AvailableStock  int                `json:"available_stock"`
	MRP             float64            `json:"mrp"`
	RichDescription string             `json:"rich_description"`
	Images          []model.ImageAsset `json:"images"`
	CategoryName    string             `json:"category_name"`
}
