package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, orgID, categoryID string) (*model.Category, error)
	Save(ctx context.Context, category *model.Category) error
	FindAllByOrg(ctx context.Context, orgID string) ([]model.Category, error)
	Delete(ctx context.Context, orgID, categoryID string) error
}
