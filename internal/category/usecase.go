package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, orgID string, input *dto.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, orgID, categoryID string, input *dto.CategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context, orgID string) ([]model.Category, error)
	DeleteCategory(ctx context.Context, orgID, categoryID string) error
}
