package listener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type fakeUseCase struct {
	applied []*dto.StockEventInput
}

func (f *fakeUseCase) ApplyStockEvent(_ context.Context, input *dto.StockEventInput) (*model.Product, error) {
	f.applied = append(f.applied, input)
	return &model.Product{}, nil
}

func (f *fakeUseCase) EnrichProduct(_ context.Context, _, _ string, _ *dto.EnrichProductInput) (*model.Product, error) {
	return nil, nil
}

func (f *fakeUseCase) GetProduct(_ context.Context, _, _ string) (*model.Product, error) {
	return nil, nil
}

func (f *fakeUseCase) GetProductsByIDs(_ context.Context, _ string, _ []string) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeUseCase) DeleteProduct(_ context.Context, _, _ string) error { return nil }

func (f *fakeUseCase) ListProducts(_ context.Context, _ string) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeUseCase) ListAvailableProducts(_ context.Context, _ string) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeUseCase) ListAvailableProductsPaged(_ context.Context, _ *dto.ListAvailableInput) (*dto.ProductWithStockPage, error) {
	return nil, nil
}

func (f *fakeUseCase) GetPublicProductDetail(_ context.Context, _, _ string) (*dto.PublicProductDetail, error) {
	return nil, nil
}

func (f *fakeUseCase) SearchProducts(_ context.Context, _, _ string, _ int) ([]model.Product, error) {
	return nil, nil
}

func TestProcessMessageAppliesStockLevelChanged(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewStockListener(nil, uc, zap.NewNop())

	l.processMessage(context.Background(), []byte(`{
		"event_id": "evt-1",
		"event_type": "StockLevelChanged",
		"payload": {
			"organization_id": "org-1",
			"product_id": "prod-1",
			"new_total_stock": 17,
			"product_name": "Paracetamol",
			"mrp": 30.5
		}
	}`))

	require.Len(t, uc.applied, 1)
	assert.Equal(t, "prod-1", uc.applied[0].ProductID)
	assert.Equal(t, 17, uc.applied[0].NewStock)
	assert.Equal(t, 30.5, uc.applied[0].MRP)
}

func TestProcessMessageIgnoresOtherEventTypes(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewStockListener(nil, uc, zap.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_type":"PriceChanged","payload":{"product_id":"prod-1"}}`))
	assert.Empty(t, uc.applied)
}

func TestProcessMessageSwallowsMalformedPayloads(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewStockListener(nil, uc, zap.NewNop())

	l.processMessage(context.Background(), []byte(`not json at all`))
	assert.Empty(t, uc.applied)
}
