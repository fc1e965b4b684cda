package service

import (
	"context"

	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/infrastructure/imagehost"
)

type ProductService interface {
	GetProducts(ctx context.Context, filter dto.ProductFilter) (data []dto.ProductResponse, err error)
	GetProduct(ctx context.Context, identifier string) (data dto.ProductResponse, err error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (data dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, req dto.ProductRequest) (data dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, id string) (data dto.DeleteProductResponse, err error)
}

type CatalogService interface {
	Browse(ctx context.Context, req dto.CatalogRequest) (data dto.CatalogResponse, err error)
	Dashboard(ctx context.Context) (data dto.DashboardResponse, err error)
	Recommendations(ctx context.Context) (data dto.RecommendationsResponse, err error)
}

type AdminService interface {
	Login(ctx context.Context, req dto.LoginRequest) (session Session, err error)
	Revalidate(ctx context.Context, path string) (err error)
}

// ImageStore hosts uploaded product images.
type ImageStore interface {
	Upload(ctx context.Context, file, fileName string) (image imagehost.Image, err error)
	Delete(ctx context.Context, fileID string) (err error)
}

// Invalidator tells the rendering layer that the views at paths are stale. Delivery is at least
// once; repeating an invalidation is harmless.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) (err error)
}
