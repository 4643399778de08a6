package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const orderCollection = "storefront_orders"

type MongoOrderRepository struct {
	orders *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{orders: db.Collection(orderCollection)}
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, orgID, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.orders.FindOne(ctx, bson.M{
		"organization_id": orgID,
		"order_id":        orderID,
	}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("order lookup", err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) Save(ctx context.Context, order *model.Order) error {
	filter := bson.M{
		"organization_id": order.OrganizationID,
		"order_id":        order.OrderID,
	}
	_, err := r.orders.ReplaceOne(ctx, filter, order, options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Storage("order save", err)
	}
	return nil
}
