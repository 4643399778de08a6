package model

// Category groups products for storefront navigation. ParentCategoryID is a
// plain back-reference; the chain is not validated for cycles.
type Category struct {
	CategoryID       string `bson:"category_id" json:"category_id"`
	OrganizationID   string `bson:"organization_id" json:"organization_id"`
	Name             string `bson:"name" json:"name"`
	Slug             string `bson:"slug" json:"slug"`
	Description      string `bson:"description" json:"description"`
	ImageURL         string `bson:"image_url" json:"image_url"`
	ParentCategoryID string `bson:"parent_category_id,omitempty" json:"parent_category_id,omitempty"`
}
