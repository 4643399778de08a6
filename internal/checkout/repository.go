package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type OrderRepository interface {
	// FindByID returns (nil, nil) when no order matches.
	FindByID(ctx context.Context, orgID, orderID string) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
}
