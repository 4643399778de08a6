package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const categoryCollection = "storefront_categories"

type MongoRepository struct {
	categories *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{categories: db.Collection(categoryCollection)}
}

func (r *MongoRepository) FindByID(ctx context.Context, orgID, categoryID string) (*model.Category, error) {
	var cat model.Category
	err := r.categories.FindOne(ctx, bson.M{
		"organization_id": orgID,
		"category_id":     categoryID,
	}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("category lookup", err)
	}
	return &cat, nil
}

func (r *MongoRepository) Save(ctx context.Context, category *model.Category) error {
	filter := bson.M{
		"organization_id": category.OrganizationID,
		"category_id":     category.CategoryID,
	}
	_, err := r.categories.ReplaceOne(ctx, filter, category, options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Storage("category save", err)
	}
	return nil
}

func (r *MongoRepository) FindAllByOrg(ctx context.Context, orgID string) ([]model.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, apperr.Storage("category query", err)
	}
	defer cur.Close(ctx)

	var categories []model.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, apperr.Storage("category decode", err)
	}
	return categories, nil
}

func (r *MongoRepository) Delete(ctx context.Context, orgID, categoryID string) error {
	_, err := r.categories.DeleteOne(ctx, bson.M{
		"organization_id": orgID,
		"category_id":     categoryID,
	})
	if err != nil {
		return apperr.Storage("category delete", err)
	}
	return nil
}
