package repository

import (
	"context"
	"encoding/base64"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const (
	productCollection = "storefront_products"
	branchCollection  = "branches"
)

type MongoRepository struct {
	products *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{products: db.Collection(productCollection)}
}

func (r *MongoRepository) FindByID(ctx context.Context, orgID, productID string) (*model.Product, error) {
	var product model.Product
	err := r.products.FindOne(ctx, bson.M{
		"organization_id": orgID,
		"product_id":      productID,
	}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("product lookup", err)
	}
	return &product, nil
}

// Save overwrites the whole document, inserting it when absent. There is no
// partial patch at this layer.
func (r *MongoRepository) Save(ctx context.Context, product *model.Product) error {
	filter := bson.M{
		"organization_id": product.OrganizationID,
		"product_id":      product.ProductID,
	}
	_, err := r.products.ReplaceOne(ctx, filter, product, options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Storage("product save", err)
	}
	return nil
}

func (r *MongoRepository) FindAllByOrg(ctx context.Context, orgID string) ([]model.Product, error) {
	return r.findProducts(ctx, bson.M{"organization_id": orgID})
}

func (r *MongoRepository) FindAllVisible(ctx context.Context, orgID string) ([]model.Product, error) {
	return r.findProducts(ctx, bson.M{"organization_id": orgID, "visible": true})
}

// FindVisiblePage pages visible products by product_id. The cursor is the
// base64 product_id of the last row of the previous page; one extra row is
// fetched to decide has-next without a second query.
func (r *MongoRepository) FindVisiblePage(ctx context.Context, orgID, categoryID string, pageSize int, cursor string) ([]model.Product, string, bool, error) {
	filter := bson.M{
		"organization_id": orgID,
		"visible":         true,
	}
	if categoryID != "" {
		filter["category_name"] = categoryID
	}
	if cursor != "" {
		lastID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", false, apperr.InvalidInput("malformed page cursor")
		}
		filter["product_id"] = bson.M{"$gt": lastID}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "product_id", Value: 1}}).
		SetLimit(int64(pageSize) + 1)

	cur, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", false, apperr.Storage("visible page query", err)
	}
	defer cur.Close(ctx)

	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, "", false, apperr.Storage("visible page decode", err)
	}

	hasNext := len(products) > pageSize
	if hasNext {
		products = products[:pageSize]
	}

	nextCursor := ""
	if hasNext && len(products) > 0 {
		nextCursor = encodeCursor(products[len(products)-1].ProductID)
	}
	return products, nextCursor, hasNext, nil
}

func (r *MongoRepository) FindAllByIDs(ctx context.Context, orgID string, productIDs []string) ([]model.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	return r.findProducts(ctx, bson.M{
		"organization_id": orgID,
		"product_id":      bson.M{"$in": productIDs},
	})
}

func (r *MongoRepository) Delete(ctx context.Context, orgID, productID string) error {
	_, err := r.products.DeleteOne(ctx, bson.M{
		"organization_id": orgID,
		"product_id":      productID,
	})
	if err != nil {
		return apperr.Storage("product delete", err)
	}
	return nil
}

func (r *MongoRepository) findProducts(ctx context.Context, filter bson.M) ([]model.Product, error) {
	cur, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Storage("product query", err)
	}
	defer cur.Close(ctx)

	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Storage("product decode", err)
	}
	return products, nil
}

func encodeCursor(productID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(productID))
}

func decodeCursor(cursor string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type MongoBranchRepository struct {
	branches *mongo.Collection
}

func NewMongoBranchRepository(db *mongo.Database) *MongoBranchRepository {
	return &MongoBranchRepository{branches: db.Collection(branchCollection)}
}

func (r *MongoBranchRepository) FindAllByOrg(ctx context.Context, orgID string) ([]model.Branch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "branch_id", Value: 1}})
	cur, err := r.branches.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, apperr.Storage("branch query", err)
	}
	defer cur.Close(ctx)

	var branches []model.Branch
	if err := cur.All(ctx, &branches); err != nil {
		return nil, apperr.Storage("branch decode", err)
	}
	return branches, nil
}
