package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/integration"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const (
	saleTypeEcommerce = "E-COMMERCE"

	// codIdentifier is the sentinel PaymentID of a cash-on-delivery order;
	// prepaid orders get a real payment order id later.
	codIdentifier = "COD_IDENTIFIER"

	placeholderName = "Product12345"
	placeholderSKU  = "SKU12345"
	placeholderHSN  = "12345"

	packagingStacked = "stacked"
)

type checkoutUseCase struct {
	orders     checkout.OrderRepository
	products   catalog.Repository
	branches   catalog.BranchRepository
	inventory  integration.InventoryGateway
	payment    integration.PaymentGateway
	logger     *zap.Logger
	storefront config.StorefrontConfig
}

func NewCheckoutUseCase(
	orders checkout.OrderRepository,
	products catalog.Repository,
	branches catalog.BranchRepository,
	inventory integration.InventoryGateway,
	payment integration.PaymentGateway,
	cfg config.StorefrontConfig,
	log *zap.Logger,
) checkout.UseCase {
	return &checkoutUseCase{
		orders:     orders,
		products:   products,
		branches:   branches,
		inventory:  inventory,
		payment:    payment,
		logger:     log,
		storefront: cfg,
	}
}

// InitiateCheckout runs the cart through the inventory service's sale check
// and persists a PENDING_PAYMENT order built from the verified sale lines. A
// rejected sale passes the inventory conflict back untouched and leaves no
// order behind.
func (uc *checkoutUseCase) InitiateCheckout(ctx context.Context, orgID string, input *dto.CheckoutInput) (*model.Order, error) {
	if len(input.CartItems) == 0 {
		return nil, apperr.InvalidInput("cart is empty")
	}

	branches, err := uc.branches.FindAllByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperr.NotFound("organization %s has no fulfillment branch", orgID)
	}
	branchID := branches[0].BranchID

	saleItems, err := uc.buildSaleItems(ctx, orgID, input.CartItems)
	if err != nil {
		return nil, err
	}

	sale, err := uc.inventory.CreateSale(ctx, &integration.CreateSaleRequest{
		OrgID:    orgID,
		BranchID: branchID,
		SaleType: saleTypeEcommerce,
		GSTType:  parseGSTType(input.GSTType),
		Items:    saleItems,
	})
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		OrderID:         "ord_" + uuid.NewString(),
		OrganizationID:  orgID,
		BranchID:        branchID,
		CustomerID:      input.CustomerID,
		CustomerInfo:    input.CustomerInfo,
		ShippingAddress: input.ShippingAddress,
		Items:           sale.Items,
		GrandTotal:      sale.GrandTotal + input.ShippingCost,
		Status:          model.OrderStatusPendingPayment,
		CreatedAt:       time.Now().UTC(),
	}
	if strings.EqualFold(input.PaymentMethod, "COD") {
		order.PaymentID = codIdentifier
	}

	if err := uc.orders.Save(ctx, order); err != nil {
		// The sale already exists in inventory at this point; the gap is
		// reconciled manually.
		uc.logger.Error("sale created but order save failed",
			zap.String("org_id", orgID),
			zap.String("sale_id", sale.SaleID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("checkout initiated",
		zap.String("org_id", orgID),
		zap.String("order_id", order.OrderID),
		zap.Float64("grand_total", order.GrandTotal))
	return order, nil
}

// buildSaleItems fills the sale request lines from the local product cache;
// the inventory service re-verifies every figure.
func (uc *checkoutUseCase) buildSaleItems(ctx context.Context, orgID string, cart []dto.CartItem) ([]integration.SaleItemData, error) {
	ids := make([]string, 0, len(cart))
	for _, item := range cart {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, apperr.InvalidInput("cart items need a product id and a positive quantity")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := uc.products.FindAllByIDs(ctx, orgID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ProductID] = &products[i]
	}

	items := make([]integration.SaleItemData, 0, len(cart))
	for _, line := range cart {
		item := integration.SaleItemData{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if p, ok := byID[line.ProductID]; ok {
			item.ProductName = p.ProductName
			item.MRP = p.MRP
		}
		items = append(items, item)
	}
	return items, nil
}

// CreatePaymentOrder registers the order with the payment service and stores
// the returned payment order id on the order.
func (uc *checkoutUseCase) CreatePaymentOrder(ctx context.Context, orgID, orderID string) (*integration.PaymentOrderResponse, error) {
	order, err := uc.orders.FindByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %s not found", orderID)
	}
	if order.PaymentID == codIdentifier {
		return nil, apperr.InvalidInput("order %s is cash on delivery", orderID)
	}

	resp, err := uc.payment.CreatePaymentOrder(ctx, &integration.CreatePaymentOrderRequest{
		OrgID:    orgID,
		OrderID:  orderID,
		Amount:   order.GrandTotal,
		Currency: "INR",
	})
	if err != nil {
		return nil, err
	}

	order.PaymentID = resp.PaymentOrderID
	if err := uc.orders.Save(ctx, order); err != nil {
		uc.logger.Error("payment order created but order save failed",
			zap.String("order_id", orderID),
			zap.String("payment_order_id", resp.PaymentOrderID),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// GetOrderDetails flattens an order into the courier-facing shape and folds
// the line items into one shipping package profile.
func (uc *checkoutUseCase) GetOrderDetails(ctx context.Context, orgID, orderID string) (*dto.OrderDetails, error) {
	order, err := uc.orders.FindByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %s not found", orderID)
	}

	details := &dto.OrderDetails{
		OrderID:         order.OrderID,
		OrderDate:       order.CreatedAt,
		CustomerName:    infoOr(order.CustomerInfo, "name"),
		CustomerPhone:   order.CustomerInfo["phone"],
		CustomerEmail:   infoOr(order.CustomerInfo, "email"),
		AddressStreet:   order.ShippingAddress["street"],
		AddressStreet2:  order.ShippingAddress["street1"],
		AddressCity:     order.ShippingAddress["city"],
		AddressState:    order.ShippingAddress["state"],
		AddressZip:      order.ShippingAddress["zip"],
		PaymentMethod:   "Prepaid",
		TotalOrderValue: int(math.Round(order.GrandTotal)),
	}
	if order.PaymentID == codIdentifier {
		details.PaymentMethod = "COD"
	}

	for _, item := range order.Items {
		details.Items = append(details.Items, dto.OrderItem{
			Name:         stringOr(item.ProductName, placeholderName),
			SKU:          stringOr(item.SKU, placeholderSKU),
			HSN:          stringOr(item.HSN, placeholderHSN),
			Units:        item.Quantity,
			SellingPrice: item.MRPPerItem,
		})
	}

	if err := uc.foldPackageProfile(ctx, order, details); err != nil {
		return nil, err
	}
	return details, nil
}

// foldPackageProfile aggregates item dimensions into one package: weight is
// the quantity-weighted sum, length and width the maximum footprint, and
// height either the stacked sum or the bounding-box maximum depending on
// configuration. Products without recorded dimensions contribute zero; a
// failed lookup is an error, not a zero profile.
func (uc *checkoutUseCase) foldPackageProfile(ctx context.Context, order *model.Order, details *dto.OrderDetails) error {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	var products []model.Product
	if len(ids) > 0 {
		var err error
		products, err = uc.products.FindAllByIDs(ctx, order.OrganizationID, ids)
		if err != nil {
			return err
		}
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ProductID] = &products[i]
	}

	stacked := uc.storefront.PackagingModel == "" || uc.storefront.PackagingModel == packagingStacked

	weight := decimal.Zero
	length := decimal.Zero
	width := decimal.Zero
	height := decimal.Zero

	for _, item := range order.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))

		if p.Weight != nil {
			weight = weight.Add(decimal.NewFromFloat(p.Weight.Value).Mul(qty))
		}
		if p.Dimensions == nil {
			continue
		}

		l := decimal.NewFromFloat(p.Dimensions.Length)
		w := decimal.NewFromFloat(p.Dimensions.Width)
		h := decimal.NewFromFloat(p.Dimensions.Height)

		if l.GreaterThan(length) {
			length = l
		}
		if w.GreaterThan(width) {
			width = w
		}
		if stacked {
			height = height.Add(h.Mul(qty))
		} else if h.GreaterThan(height) {
			height = h
		}
	}

	details.PackageWeight = weight.Round(2)
	details.PackageLength = length.Round(2)
	details.PackageWidth = width.Round(2)
	details.PackageHeight = height.Round(2)
	return nil
}

func parseGSTType(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GST":
		return "GST"
	case "NON_GST":
		return "NON_GST"
	default:
		return "NON_GST"
	}
}

func infoOr(info map[string]string, key string) string {
	if v := info[key]; v != "" {
		return v
	}
	return "N/A"
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
