package repository

import (
	"context"

	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoDBProductRepository interface {
	EnsureIndexes(ctx context.Context) (err error)
	AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error)
	GetProducts(ctx context.Context, filter dto.ProductFilter) (data []domain.Product, err error)
	GetProductBySlug(ctx context.Context, slug string) (product domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (exists bool, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (product domain.Product, err error)
}

// ViewCache stores rendered views keyed by their public path.
type ViewCache interface {
	Get(ctx context.Context, path string, dest interface{}) (found bool, err error)
	Set(ctx context.Context, path string, value interface{}) (err error)
	Invalidate(ctx context.Context, paths ...string) (err error)
}
