package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db  *mongo.Database
	now func() time.Time
}

func CreateNewMongoDBRepository(db *mongo.Database) MongoDBProductRepository {
	return &MongoDBProductRepositoryImpl{db: db, now: time.Now}
}

func (r *MongoDBProductRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(productCollection)
}

// timestamp truncates to the millisecond precision BSON dates keep.
func (r *MongoDBProductRepositoryImpl) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// EnsureIndexes creates the unique slug index that backs the service-level slug check, plus the
// lookup indexes the catalog queries use.
func (r *MongoDBProductRepositoryImpl) EnsureIndexes(ctx context.Context) (err error) {
	_, err = r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "last_updated", Value: -1}}},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Msg("")
	}
	return
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	now := r.timestamp()
	data.ID = primitive.NilObjectID
	data.CreatedAt = now
	data.UpdatedAt = now
	data.LastUpdated = now

	result, err := r.collection().InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return product, errs.ErrSlugAlreadyUsed
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	data.ID = result.InsertedID.(primitive.ObjectID)
	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter dto.ProductFilter) (data []domain.Product, err error) {
	query := bson.D{}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Search != "" {
		query = append(query, bson.E{Key: "name", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Search),
			Options: "i",
		}})
	}

	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductBySlug(ctx context.Context, slug string) (product domain.Product, err error) {
	return r.findOne(ctx, "GetProductBySlug", bson.D{{Key: "slug", Value: slug}})
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrInvalidID
	}

	return r.findOne(ctx, "GetProductByID", bson.D{{Key: "_id", Value: productID}})
}

func (r *MongoDBProductRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (product domain.Product, err error) {
	err = r.collection().FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return product, err
	}
	return product, nil
}

func (r *MongoDBProductRepositoryImpl) SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (exists bool, err error) {
	filter := bson.D{{Key: "slug", Value: slug}}
	if !excludeID.IsZero() {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}})
	}

	count, err := r.collection().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SlugExists").Msg("")
		return
	}

	return count > 0, nil
}

// UpdateProduct replaces the editable fields. last_updated goes through $max so it never moves
// backwards even if clocks disagree between replicas of this service.
func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	now := r.timestamp()
	filter := bson.D{{Key: "_id", Value: data.ID}}

	set := bson.D{
		{Key: "name", Value: data.Name},
		{Key: "slug", Value: data.Slug},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "category", Value: data.Category},
		{Key: "inventory", Value: data.Inventory},
		{Key: "image", Value: data.Image},
		{Key: "image_file_id", Value: data.ImageFileID},
		{Key: "updated_at", Value: now},
	}
	update := bson.D{
		{Key: "$set", Value: set},
		{Key: "$max", Value: bson.D{{Key: "last_updated", Value: now}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return product, errs.ErrSlugAlreadyUsed
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	return product, nil
}

// DeleteProduct returns the removed document so callers can clean up what it referenced.
func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrInvalidID
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.collection().FindOneAndDelete(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	return product, nil
}
