package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
)

func testClient(url string) *Client {
	return NewClient(url, 2*time.Second, zap.NewNop())
}

func TestCreateSale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/public/inventory/sale", r.URL.Path)

		var req integration.CreateSaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "E-COMMERCE", req.SaleType)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sale_id":"sale-9","grand_total":120.5,"items":[{"product_id":"prod-1","quantity":2}]}`))
	}))
	defer srv.Close()

	sale, err := testClient(srv.URL).CreateSale(context.Background(), &integration.CreateSaleRequest{
		OrgID:    "org-1",
		SaleType: "E-COMMERCE",
	})
	require.NoError(t, err)

	assert.Equal(t, "sale-9", sale.SaleID)
	assert.Equal(t, 120.5, sale.GrandTotal)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)
}

func TestCreateSaleConflictBodyPassesThroughVerbatim(t *testing.T) {
	remoteBody := `{"error":"insufficient stock","product_id":"prod-1","available":3}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(remoteBody))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSale(context.Background(), &integration.CreateSaleRequest{})

	require.True(t, apperr.IsInventoryConflict(err))
	assert.Equal(t, remoteBody, err.Error())
}

func TestCreateSaleBadRequestIsAlsoConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"price mismatch"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSale(context.Background(), &integration.CreateSaleRequest{})
	assert.True(t, apperr.IsInventoryConflict(err))
}

func TestCreateSaleServerErrorIsCommunicationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSale(context.Background(), &integration.CreateSaleRequest{})

	var sc *apperr.ServiceCommunicationError
	require.ErrorAs(t, err, &sc)
	assert.Equal(t, "inventory", sc.Service)
}

func TestGetStockBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/inventory/medicines/stock-levels", r.URL.Path)
		_, _ = w.Write([]byte(`[{"product_id":"prod-1","available_stock":7},{"product_id":"prod-2","available_stock":0}]`))
	}))
	defer srv.Close()

	counts, err := testClient(srv.URL).GetStockBatch(context.Background(), &integration.StockBatchRequest{
		OrgID:      "org-1",
		ProductIDs: []string{"prod-1", "prod-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"prod-1": 7, "prod-2": 0}, counts)
}

func TestGetPublicProductDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPublicProductDetail(context.Background(), "org-1", "prod-x")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetPublicProductDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/inventory/org-1/medicines/prod-1/stock-details", r.URL.Path)
		_, _ = w.Write([]byte(`{"product_id":"prod-1","manufacturer":"Acme Pharma","total_stock":42}`))
	}))
	defer srv.Close()

	detail, err := testClient(srv.URL).GetPublicProductDetail(context.Background(), "org-1", "prod-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme Pharma", detail.Manufacturer)
	assert.Equal(t, 42, detail.TotalStock)
}
