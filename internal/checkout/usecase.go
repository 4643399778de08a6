package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	InitiateCheckout(ctx context.Context, orgID string, input *dto.CheckoutInput) (*model.Order, error)
	CreatePaymentOrder(ctx context.Context, orgID, orderID string) (*integration.PaymentOrderResponse, error)
	GetOrderDetails(ctx context.Context, orgID, orderID string) (*dto.OrderDetails, error)
}
