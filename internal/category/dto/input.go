package dto

type CategoryInput struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	ParentCategoryID string `json:"parent_category_id"`
}
