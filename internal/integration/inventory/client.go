package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Client talks to the inventory service over HTTP. It encapsulates URL
// construction, request execution, and error translation.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *Client) CreateSale(ctx context.Context, req *integration.CreateSaleRequest) (*model.Sale, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal create sale request")
	}

	url := c.baseURL + "/api/public/inventory/sale"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build create sale request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusBadRequest:
		// The remote rejection body (insufficient stock, price mismatch) is
		// passed through verbatim.
		c.logger.Warn("inventory rejected sale",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, &apperr.InventoryConflictError{Body: string(respBody)}
	case resp.StatusCode >= 300:
		return nil, &apperr.ServiceCommunicationError{
			Service: "inventory",
			Err:     fmt.Errorf("create sale: unexpected status %d", resp.StatusCode),
		}
	}

	var sale model.Sale
	if err := json.Unmarshal(respBody, &sale); err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: errors.Wrap(err, "decode sale")}
	}
	return &sale, nil
}

func (c *Client) GetStockBatch(ctx context.Context, req *integration.StockBatchRequest) (map[string]int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal stock batch request")
	}

	url := c.baseURL + "/api/public/inventory/medicines/stock-levels"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build stock batch request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &apperr.ServiceCommunicationError{
			Service: "inventory",
			Err:     fmt.Errorf("stock batch: unexpected status %d", resp.StatusCode),
		}
	}

	var rows []struct {
		ProductID      string `json:"product_id"`
		AvailableStock int    `json:"available_stock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: errors.Wrap(err, "decode stock batch")}
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.AvailableStock
	}
	return counts, nil
}

func (c *Client) GetPublicProductDetail(ctx context.Context, orgID, productID string) (*integration.ProductStockDetail, error) {
	url := fmt.Sprintf("%s/api/public/inventory/%s/medicines/%s/stock-details", c.baseURL, orgID, productID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build product detail request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("product %s not found in inventory", productID)
	case resp.StatusCode >= 300:
		return nil, &apperr.ServiceCommunicationError{
			Service: "inventory",
			Err:     fmt.Errorf("product detail: unexpected status %d", resp.StatusCode),
		}
	}

	var detail integration.ProductStockDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "inventory", Err: errors.Wrap(err, "decode product detail")}
	}
	return &detail, nil
}
