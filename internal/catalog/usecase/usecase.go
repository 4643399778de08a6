package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
)

const (
	searchIndex  = "storefront_products"
	listCacheTTL = 5 * time.Minute
)

const searchMapping = `{
	"mappings": {
		"properties": {
			"organization_id": { "type": "keyword" },
			"product_id": { "type": "keyword" },
			"product_name": { "type": "text" },
			"rich_description": { "type": "text" },
			"tags": { "type": "keyword" },
			"category_name": { "type": "keyword" },
			"visible": { "type": "boolean" },
			"mrp": { "type": "double" }
		}
	}
}`

type catalogUseCase struct {
	repo              catalog.Repository
	branchRepo        catalog.BranchRepository
	inventory         integration.InventoryGateway
	cache             *cache.RedisClient
	es                *search.Client
	logger            *zap.Logger
	lowStockThreshold int
}

// NewCatalogUseCase wires the reconciliation engine and public listing.
// cache and es may be nil; both are optional accelerators.
func NewCatalogUseCase(
	repo catalog.Repository,
	branchRepo catalog.BranchRepository,
	inventory integration.InventoryGateway,
	redis *cache.RedisClient,
	es *search.Client,
	log *zap.Logger,
	lowStockThreshold int,
) catalog.UseCase {
	return &catalogUseCase{
		repo:              repo,
		branchRepo:        branchRepo,
		inventory:         inventory,
		cache:             redis,
		es:                es,
		logger:            log,
		lowStockThreshold: lowStockThreshold,
	}
}

// ApplyStockEvent is the idempotent merge of one inbound stock-change event.
// A product first seen here is created hidden; enrichment is the only path
// that can make it visible. Inventory-owned fields are overwritten on every
// event, presentation fields are never touched, and the save is a full
// document overwrite, so replaying an event yields the same stored state.
func (uc *catalogUseCase) ApplyStockEvent(ctx context.Context, input *dto.StockEventInput) (*model.Product, error) {
	if input.ProductID == "" {
		return nil, apperr.InvalidInput("product id is required for a stock event")
	}

	product, err := uc.repo.FindByID(ctx, input.OrganizationID, input.ProductID)
	if err != nil {
		return nil, err
	}

	created := false
	if product == nil {
		created = true
		product = &model.Product{
			OrganizationID: input.OrganizationID,
			ProductID:      input.ProductID,
			CategoryName:   input.Category,
			TaxProfileID:   input.TaxProfileID,
			GSTType:        input.GSTType,
			Visible:        false,
			Images:         []model.ImageAsset{},
			Tags:           []string{},
			CreatedAt:      time.Now(),
		}
	}

	product.ProductName = input.ProductName
	product.MRP = input.MRP
	product.StockLevel = input.NewStock
	product.CurrentStatus = model.DeriveStockStatus(input.NewStock)

	if err := uc.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidateListCache(ctx, input.OrganizationID)

	uc.logger.Info("applied stock event",
		zap.String("org_id", input.OrganizationID),
		zap.String("product_id", input.ProductID),
		zap.Int("stock", product.StockLevel),
		zap.String("status", string(product.CurrentStatus)),
		zap.Bool("created", created))
	return product, nil
}

// EnrichProduct applies a sparse presentation patch: only non-empty fields
// overwrite stored values, except Visible which is always written. Tags
// replace the stored list wholesale.
func (uc *catalogUseCase) EnrichProduct(ctx context.Context, orgID, productID string, input *dto.EnrichProductInput) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("storefront product %s not found", productID)
	}

	if input.RichDescription != "" {
		product.RichDescription = input.RichDescription
	}
	if input.Highlights != "" {
		product.Highlights = input.Highlights
	}
	product.Visible = input.Visible
	if input.CategoryID != "" {
		product.CategoryName = input.CategoryID
	}
	if input.Slug != "" {
		product.Slug = input.Slug
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Dimensions != nil {
		product.Dimensions = input.Dimensions
	}
	if input.Weight != nil {
		product.Weight = input.Weight
	}

	if err := uc.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidateListCache(ctx, orgID)
	go uc.syncToSearch(context.Background(), product)

	return product, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, orgID, productID string) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("storefront product %s not found", productID)
	}
	return product, nil
}

func (uc *catalogUseCase) GetProductsByIDs(ctx context.Context, orgID string, productIDs []string) ([]model.Product, error) {
	return uc.repo.FindAllByIDs(ctx, orgID, productIDs)
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, orgID, productID string) error {
	if err := uc.repo.Delete(ctx, orgID, productID); err != nil {
		return err
	}
	uc.invalidateListCache(ctx, orgID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), searchIndex, searchDocID(orgID, productID)); err != nil {
				uc.logger.Error("failed to delete product from search index", zap.Error(err))
			}
		}()
	}
	uc.logger.Info("deleted storefront product",
		zap.String("org_id", orgID),
		zap.String("product_id", productID))
	return nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, orgID string) ([]model.Product, error) {
	return uc.repo.FindAllByOrg(ctx, orgID)
}

// ListAvailableProducts returns the plain visible list, cached per org for a
// short window because it backs the busiest public route.
func (uc *catalogUseCase) ListAvailableProducts(ctx context.Context, orgID string) ([]model.Product, error) {
	cacheKey := listCacheKey(orgID)
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var products []model.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := uc.repo.FindAllVisible(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}
	return products, nil
}

// ListAvailableProductsPaged merges one catalog cursor page with a single
// batch stock lookup. The inventory response never affects the cursor; an
// empty catalog page short-circuits before any remote call.
func (uc *catalogUseCase) ListAvailableProductsPaged(ctx context.Context, input *dto.ListAvailableInput) (*dto.ProductWithStockPage, error) {
	products, nextCursor, hasNext, err := uc.repo.FindVisiblePage(
		ctx, input.OrganizationID, input.CategoryID, input.PageSize, input.Cursor)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return &dto.ProductWithStockPage{Items: []dto.ProductWithStock{}, HasNext: false}, nil
	}

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ProductID)
	}

	branchID := ""
	branches, err := uc.branchRepo.FindAllByOrg(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if len(branches) > 0 {
		branchID = branches[0].BranchID
	}

	stockMap, err := uc.inventory.GetStockBatch(ctx, &integration.StockBatchRequest{
		OrgID:      input.OrganizationID,
		BranchID:   branchID,
		ProductIDs: productIDs,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductWithStock, 0, len(products))
	for _, p := range products {
		stock := stockMap[p.ProductID]
		items = append(items, dto.ProductWithStock{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			CategoryName: p.CategoryName,
			MRP:          p.MRP,
			Slug:         p.Slug,
			Images:       p.Images,
			StockLevel:   stock,
			InStock:      stock > 0,
			LowStock:     stock > 0 && stock <= uc.lowStockThreshold,
		})
	}

	return &dto.ProductWithStockPage{
		Items:      items,
		NextCursor: nextCursor,
		HasNext:    hasNext,
	}, nil
}

// GetPublicProductDetail combines the local presentation record with live
// manufacturer/stock data from inventory. Hidden products read as not found.
func (uc *catalogUseCase) GetPublicProductDetail(ctx context.Context, orgID, productID string) (*dto.PublicProductDetail, error) {
	product, err := uc.repo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Visible {
		return nil, apperr.NotFound("product not found")
	}

	detail, err := uc.inventory.GetPublicProductDetail(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}

	categoryName := product.CategoryName
	if categoryName == "" {
		categoryName = "Uncategorized"
	}

	return &dto.PublicProductDetail{
		ProductID:       product.ProductID,
		Name:            product.ProductName,
		GenericName:     product.Slug,
		Manufacturer:    detail.Manufacturer,
		AvailableStock:  detail.TotalStock,
		MRP:             product.MRP,
		RichDescription: product.RichDescription,
		Images:          product.Images,
		CategoryName:    categoryName,
	}, nil
}

// SearchProducts queries the search index when available and falls back to a
// substring scan over the visible list when it is not.
func (uc *catalogUseCase) SearchProducts(ctx context.Context, orgID, query string, size int) ([]model.Product, error) {
	if size <= 0 {
		size = 20
	}

	if uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", query),
								"fields": []string{"product_name^3", "tags", "rich_description"},
							},
						},
						{"term": map[string]interface{}{"organization_id": orgID}},
						{"term": map[string]interface{}{"visible": true}},
					},
				},
			},
			"size": size,
		}

		res, err := uc.es.Search(ctx, searchIndex, q)
		if err == nil {
			var products []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					products = append(products, p)
				}
			}
			return products, nil
		}
		uc.logger.Error("search index query failed, falling back to catalog scan", zap.Error(err))
	}

	visible, err := uc.repo.FindAllVisible(ctx, orgID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var matches []model.Product
	for _, p := range visible {
		if strings.Contains(strings.ToLower(p.ProductName), needle) {
			matches = append(matches, p)
		}
		if len(matches) == size {
			break
		}
	}
	return matches, nil
}

func (uc *catalogUseCase) syncToSearch(ctx context.Context, product *model.Product) {
	if uc.es == nil {
		return
	}
	// Lazily ensure the index exists; a create on an existing index is a
	// no-op failure that CreateIndex swallows.
	_ = uc.es.CreateIndex(ctx, searchIndex, searchMapping)

	id := searchDocID(product.OrganizationID, product.ProductID)
	if err := uc.es.Index(ctx, searchIndex, id, product); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *catalogUseCase) invalidateListCache(ctx context.Context, orgID string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Client.Del(ctx, listCacheKey(orgID))
}

func listCacheKey(orgID string) string {
	return fmt.Sprintf("storefront:products:%s", orgID)
}

func searchDocID(orgID, productID string) string {
	return orgID + ":" + productID
}
