package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type fakeRepo struct {
	products  map[string]*model.Product
	saveCount int
	page      []model.Product
	pageNext  string
	pageMore  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]*model.Product{}}
}

func key(orgID, productID string) string { return orgID + "/" + productID }

func (f *fakeRepo) FindByID(_ context.Context, orgID, productID string) (*model.Product, error) {
	p, ok := f.products[key(orgID, productID)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Save(_ context.Context, product *model.Product) error {
	f.saveCount++
	cp := *product
	f.products[key(product.OrganizationID, product.ProductID)] = &cp
	return nil
}

func (f *fakeRepo) FindAllByOrg(_ context.Context, orgID string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.OrganizationID == orgID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAllVisible(_ context.Context, orgID string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.OrganizationID == orgID && p.Visible {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindVisiblePage(_ context.Context, _, _ string, _ int, _ string) ([]model.Product, string, bool, error) {
	return f.page, f.pageNext, f.pageMore, nil
}

func (f *fakeRepo) FindAllByIDs(_ context.Context, orgID string, productIDs []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range productIDs {
		if p, ok := f.products[key(orgID, id)]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, orgID, productID string) error {
	delete(f.products, key(orgID, productID))
	return nil
}

type fakeBranchRepo struct {
	branches []model.Branch
}

func (f *fakeBranchRepo) FindAllByOrg(_ context.Context, _ string) ([]model.Branch, error) {
	return f.branches, nil
}

type fakeInventory struct {
	stock          map[string]int
	stockCalls     int
	detail         *integration.ProductStockDetail
	createSaleErr  error
	createSaleResp *model.Sale
}

func (f *fakeInventory) CreateSale(_ context.Context, _ *integration.CreateSaleRequest) (*model.Sale, error) {
	if f.createSaleErr != nil {
		return nil, f.createSaleErr
	}
	return f.createSaleResp, nil
}

func (f *fakeInventory) GetStockBatch(_ context.Context, _ *integration.StockBatchRequest) (map[string]int, error) {
	f.stockCalls++
	return f.stock, nil
}

func (f *fakeInventory) GetPublicProductDetail(_ context.Context, _, _ string) (*integration.ProductStockDetail, error) {
	if f.detail == nil {
		return nil, apperr.NotFound("product not found")
	}
	return f.detail, nil
}

func newTestUseCase(repo *fakeRepo, branches *fakeBranchRepo, inv *fakeInventory) *catalogUseCase {
	return NewCatalogUseCase(repo, branches, inv, nil, nil, zap.NewNop(), 5).(*catalogUseCase)
}

func TestApplyStockEventCreatesHiddenProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	product, err := uc.ApplyStockEvent(context.Background(), &dto.StockEventInput{
		OrganizationID: "org-1",
		ProductID:      "prod-1",
		ProductName:    "Paracetamol 500mg",
		MRP:            30.5,
		NewStock:       12,
		Category:       "Medicines",
	})
	require.NoError(t, err)

	assert.False(t, product.Visible, "first-seen products must stay hidden until enriched")
	assert.Equal(t, "Paracetamol 500mg", product.ProductName)
	assert.Equal(t, 12, product.StockLevel)
	assert.Equal(t, model.StockStatusInStock, product.CurrentStatus)
	assert.Equal(t, "Medicines", product.CategoryName)
	assert.NotNil(t, product.Images)
	assert.NotNil(t, product.Tags)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestApplyStockEventPreservesPresentation(t *testing.T) {
	repo := newFakeRepo()
	repo.products[key("org-1", "prod-1")] = &model.Product{
		OrganizationID:  "org-1",
		ProductID:       "prod-1",
		ProductName:     "Old Name",
		MRP:             10,
		Visible:         true,
		RichDescription: "<p>hand written</p>",
		Tags:            []string{"fever"},
		Slug:            "paracetamol",
	}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	product, err := uc.ApplyStockEvent(context.Background(), &dto.StockEventInput{
		OrganizationID: "org-1",
		ProductID:      "prod-1",
		ProductName:    "New Name",
		MRP:            12,
		NewStock:       0,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", product.ProductName)
	assert.Equal(t, float64(12), product.MRP)
	assert.Equal(t, model.StockStatusOutOfStock, product.CurrentStatus)
	// Presentation fields survive every stock event untouched.
	assert.True(t, product.Visible)
	assert.Equal(t, "<p>hand written</p>", product.RichDescription)
	assert.Equal(t, []string{"fever"}, product.Tags)
	assert.Equal(t, "paracetamol", product.Slug)
}

func TestApplyStockEventIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})
	event := &dto.StockEventInput{
		OrganizationID: "org-1",
		ProductID:      "prod-1",
		ProductName:    "Paracetamol",
		MRP:            30,
		NewStock:       7,
	}

	first, err := uc.ApplyStockEvent(context.Background(), event)
	require.NoError(t, err)
	second, err := uc.ApplyStockEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, first.StockLevel, second.StockLevel)
	assert.Equal(t, first.CurrentStatus, second.CurrentStatus)
	assert.Equal(t, first.Visible, second.Visible)
	assert.Equal(t, 2, repo.saveCount)
}

func TestApplyStockEventRequiresProductID(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeBranchRepo{}, &fakeInventory{})

	_, err := uc.ApplyStockEvent(context.Background(), &dto.StockEventInput{OrganizationID: "org-1"})
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestApplyStockEventStoresNegativeStockAsIs(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	product, err := uc.ApplyStockEvent(context.Background(), &dto.StockEventInput{
		OrganizationID: "org-1",
		ProductID:      "prod-1",
		NewStock:       -5,
	})
	require.NoError(t, err)
	assert.Equal(t, -5, product.StockLevel)
	assert.Equal(t, model.StockStatusOutOfStock, product.CurrentStatus)
}

func TestEnrichProductNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeBranchRepo{}, &fakeInventory{})

	_, err := uc.EnrichProduct(context.Background(), "org-1", "missing", &dto.EnrichProductInput{Visible: true})
	assert.True(t, apperr.IsNotFound(err))
}

func TestEnrichProductSparsePatch(t *testing.T) {
	repo := newFakeRepo()
	repo.products[key("org-1", "prod-1")] = &model.Product{
		OrganizationID:  "org-1",
		ProductID:       "prod-1",
		Visible:         true,
		RichDescription: "existing description",
		Highlights:      "existing highlights",
		Tags:            []string{"old"},
	}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	t.Run("empty fields leave stored values untouched", func(t *testing.T) {
		product, err := uc.EnrichProduct(context.Background(), "org-1", "prod-1", &dto.EnrichProductInput{
			Visible: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "existing description", product.RichDescription)
		assert.Equal(t, "existing highlights", product.Highlights)
		assert.Equal(t, []string{"old"}, product.Tags)
	})

	t.Run("visible is always written even when false", func(t *testing.T) {
		product, err := uc.EnrichProduct(context.Background(), "org-1", "prod-1", &dto.EnrichProductInput{
			Visible: false,
		})
		require.NoError(t, err)
		assert.False(t, product.Visible)
		assert.Equal(t, "existing description", product.RichDescription)
	})

	t.Run("tags replace wholesale including clearing", func(t *testing.T) {
		product, err := uc.EnrichProduct(context.Background(), "org-1", "prod-1", &dto.EnrichProductInput{
			Visible: true,
			Tags:    []string{},
		})
		require.NoError(t, err)
		assert.Empty(t, product.Tags)
	})

	t.Run("non-empty fields overwrite", func(t *testing.T) {
		product, err := uc.EnrichProduct(context.Background(), "org-1", "prod-1", &dto.EnrichProductInput{
			Visible:         true,
			RichDescription: "new description",
			Slug:            "new-slug",
			Dimensions:      &model.Dimensions{Length: 10, Width: 5, Height: 2},
			Weight:          &model.Weight{Value: 0.25},
		})
		require.NoError(t, err)
		assert.Equal(t, "new description", product.RichDescription)
		assert.Equal(t, "new-slug", product.Slug)
		require.NotNil(t, product.Dimensions)
		assert.Equal(t, float64(10), product.Dimensions.Length)
		require.NotNil(t, product.Weight)
		assert.Equal(t, 0.25, product.Weight.Value)
	})
}

func TestListAvailableProductsPagedEmptyPage(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInventory{}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, inv)

	page, err := uc.ListAvailableProductsPaged(context.Background(), &dto.ListAvailableInput{
		OrganizationID: "org-1",
		PageSize:       20,
	})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.Zero(t, inv.stockCalls, "an empty catalog page must not hit the inventory service")
}

func TestListAvailableProductsPagedJoinsStock(t *testing.T) {
	repo := newFakeRepo()
	repo.page = []model.Product{
		{ProductID: "prod-a", ProductName: "A"},
		{ProductID: "prod-b", ProductName: "B"},
		{ProductID: "prod-c", ProductName: "C"},
	}
	repo.pageNext = "cursor-next"
	repo.pageMore = true
	inv := &fakeInventory{stock: map[string]int{"prod-a": 3, "prod-c": 10}}
	uc := newTestUseCase(repo, &fakeBranchRepo{branches: []model.Branch{{BranchID: "br-1"}}}, inv)

	page, err := uc.ListAvailableProductsPaged(context.Background(), &dto.ListAvailableInput{
		OrganizationID: "org-1",
		PageSize:       3,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Equal(t, 1, inv.stockCalls, "one batch lookup per page")
	assert.True(t, page.HasNext)
	assert.Equal(t, "cursor-next", page.NextCursor)

	a, b, c := page.Items[0], page.Items[1], page.Items[2]
	assert.True(t, a.InStock)
	assert.True(t, a.LowStock, "stock 3 is at or below the threshold of 5")
	assert.False(t, b.InStock)
	assert.False(t, b.LowStock, "out of stock is not low stock")
	assert.Zero(t, b.StockLevel, "products missing from the batch response read as zero")
	assert.True(t, c.InStock)
	assert.False(t, c.LowStock)
}

func TestGetPublicProductDetailHiddenReadsAsNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.products[key("org-1", "prod-1")] = &model.Product{
		OrganizationID: "org-1",
		ProductID:      "prod-1",
		Visible:        false,
	}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	_, err := uc.GetPublicProductDetail(context.Background(), "org-1", "prod-1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetPublicProductDetailMergesInventoryData(t *testing.T) {
	repo := newFakeRepo()
	repo.products[key("org-1", "prod-1")] = &model.Product{
		OrganizationID:  "org-1",
		ProductID:       "prod-1",
		ProductName:     "Paracetamol",
		Slug:            "paracetamol",
		Visible:         true,
		MRP:             30,
		RichDescription: "desc",
	}
	inv := &fakeInventory{detail: &integration.ProductStockDetail{
		ProductID:    "prod-1",
		Manufacturer: "Acme Pharma",
		TotalStock:   42,
	}}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, inv)

	detail, err := uc.GetPublicProductDetail(context.Background(), "org-1", "prod-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme Pharma", detail.Manufacturer)
	assert.Equal(t, 42, detail.AvailableStock)
	assert.Equal(t, "paracetamol", detail.GenericName)
	assert.Equal(t, "Uncategorized", detail.CategoryName, "missing category falls back")
}

func TestSearchProductsFallbackScan(t *testing.T) {
	repo := newFakeRepo()
	repo.products[key("org-1", "prod-1")] = &model.Product{
		OrganizationID: "org-1", ProductID: "prod-1", ProductName: "Paracetamol 500mg", Visible: true,
	}
	repo.products[key("org-1", "prod-2")] = &model.Product{
		OrganizationID: "org-1", ProductID: "prod-2", ProductName: "Ibuprofen", Visible: true,
	}
	repo.products[key("org-1", "prod-3")] = &model.Product{
		OrganizationID: "org-1", ProductID: "prod-3", ProductName: "Paracetamol Syrup", Visible: false,
	}
	uc := newTestUseCase(repo, &fakeBranchRepo{}, &fakeInventory{})

	matches, err := uc.SearchProducts(context.Background(), "org-1", "paracetamol", 10)
	require.NoError(t, err)

	require.Len(t, matches, 1, "hidden products never surface in search")
	assert.Equal(t, "prod-1", matches[0].ProductID)
}
