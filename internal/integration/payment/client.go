package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
)

// Client talks to the payment service over HTTP.
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

func (c *Client) CreatePaymentOrder(ctx context.Context, req *integration.CreatePaymentOrderRequest) (*integration.PaymentOrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payment order request")
	}

	url := c.baseURL + "/api/internal/payments/create-order"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build payment order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "payment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &apperr.ServiceCommunicationError{
			Service: "payment",
			Err:     fmt.Errorf("create payment order: unexpected status %d", resp.StatusCode),
		}
	}

	var out integration.PaymentOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &apperr.ServiceCommunicationError{Service: "payment", Err: errors.Wrap(err, "decode payment order")}
	}
	return &out, nil
}
