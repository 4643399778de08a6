package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	// ApplyStockEvent merges one stock-change event into the catalog.
	// Creates the product (not visible) on first sight, otherwise leaves
	// presentation fields untouched. Replay-safe.
	ApplyStockEvent(ctx context.Context, input *dto.StockEventInput) (*model.Product, error)
	// EnrichProduct applies a sparse presentation patch. It never creates a
	// product; unknown IDs fail with a not-found error.
	EnrichProduct(ctx context.Context, orgID, productID string, input *dto.EnrichProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, orgID, productID string) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, orgID string, productIDs []string) ([]model.Product, error)
	DeleteProduct(ctx context.Context, orgID, productID string) error
	ListProducts(ctx context.Context, orgID string) ([]model.Product, error)
	ListAvailableProducts(ctx context.Context, orgID string) ([]model.Product, error)
	// ListAvailableProductsPaged merges one catalog cursor page with a batch
	// inventory stock lookup. Pagination state is owned entirely by the
	// catalog page.
	ListAvailableProductsPaged(ctx context.Context, input *dto.ListAvailableInput) (*dto.ProductWithStockPage, error)
	GetPublicProductDetail(ctx context.Context, orgID, productID string) (*dto.PublicProductDetail, error)
	SearchProducts(ctx context.Context, orgID, query string, size int) ([]model.Product, error)
}
