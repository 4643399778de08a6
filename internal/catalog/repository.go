package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Repository wraps the product document store. Save is a full-document
// overwrite with upsert semantics; there is no field-level patch and no
// optimistic-concurrency token, so the store's per-document
// last-writer-wins behavior applies.
type Repository interface {
	FindByID(ctx context.Context, orgID, productID string) (*model.Product, error)
	Save(ctx context.Context, product *model.Product) error
	FindAllByOrg(ctx context.Context, orgID string) ([]model.Product, error)
	FindAllVisible(ctx context.Context, orgID string) ([]model.Product, error)
	// FindVisiblePage returns one cursor page of visible products. The
	// returned cursor is an opaque continuation token; pass it back to get
	// the next page.
	FindVisiblePage(ctx context.Context, orgID, categoryID string, pageSize int, cursor string) ([]model.Product, string, bool, error)
	FindAllByIDs(ctx context.Context, orgID string, productIDs []string) ([]model.Product, error)
	Delete(ctx context.Context, orgID, productID string) error
}

// BranchRepository lists fulfillment locations for an organization. Order is
// stable but arbitrary; callers that need "a" branch take the first.
type BranchRepository interface {
	FindAllByOrg(ctx context.Context, orgID string) ([]model.Branch, error)
}
