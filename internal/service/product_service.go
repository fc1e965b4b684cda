package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alimikegami/storefront-service/config"
	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/infrastructure/metrics"
	"github.com/alimikegami/storefront-service/internal/repository"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

type ProductServiceImpl struct {
	repo        repository.MongoDBProductRepository
	views       repository.ViewCache
	images      ImageStore
	invalidator Invalidator
	config      config.Config

	// deletes coalesces concurrent deletes of the same id into one call.
	deletes singleflight.Group
}

func CreateProductService(repo repository.MongoDBProductRepository, views repository.ViewCache, images ImageStore, invalidator Invalidator, config config.Config) ProductService {
	return &ProductServiceImpl{
		repo:        repo,
		views:       views,
		images:      images,
		invalidator: invalidator,
		config:      config,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter dto.ProductFilter) (data []dto.ProductResponse, err error) {
	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return
	}

	return dto.NewProductResponses(products), nil
}

// GetProduct resolves identifier as a slug first and falls back to the object id.
func (s *ProductServiceImpl) GetProduct(ctx context.Context, identifier string) (data dto.ProductResponse, err error) {
	path := "/products/" + identifier

	var cached domain.Product
	if found, cacheErr := s.views.Get(ctx, path, &cached); cacheErr == nil && found {
		return dto.NewProductResponse(cached), nil
	}

	product, err := s.repo.GetProductBySlug(ctx, identifier)
	if errors.Is(err, errs.ErrNotFound) && primitive.IsValidObjectID(identifier) {
		product, err = s.repo.GetProductByID(ctx, identifier)
	}
	if err != nil {
		return
	}

	if cacheErr := s.views.Set(ctx, "/products/"+product.Slug, product); cacheErr != nil {
		log.Ctx(ctx).Warn().Err(cacheErr).Str("component", "GetProduct").Msg("view cache write failed")
	}

	return dto.NewProductResponse(product), nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (data dto.ProductResponse, err error) {
	defer func() { metrics.ProductOperations.WithLabelValues("create", metrics.Outcome(err)).Inc() }()

	if req.Price == nil {
		return data, errs.ErrValidation
	}

	exists, err := s.repo.SlugExists(ctx, req.Slug, primitive.NilObjectID)
	if err != nil {
		return
	}
	if exists {
		return data, errs.ErrSlugAlreadyUsed
	}

	image, err := s.resolveImage(ctx, req.Image, req.Slug, s.config.PlaceholderImage)
	if err != nil {
		return
	}

	product := domain.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       image.URL,
		ImageFileID: image.FileID,
	}
	if product.Category == "" {
		product.Category = dto.DefaultCategory
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
	}

	created, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		s.discardImage(ctx, image.FileID)
		return
	}

	s.invalidate(ctx, ProductPaths(created.Slug)...)

	return dto.NewProductResponse(created), nil
}

// UpdateProduct replaces the editable fields of an existing product. Optional fields left empty
// keep their stored value.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductRequest) (data dto.ProductResponse, err error) {
	defer func() { metrics.ProductOperations.WithLabelValues("update", metrics.Outcome(err)).Inc() }()

	if req.Price == nil {
		return data, errs.ErrValidation
	}

	existing, err := s.repo.GetProductByID(ctx, req.ID)
	if err != nil {
		return
	}

	if req.Slug != existing.Slug {
		exists, err := s.repo.SlugExists(ctx, req.Slug, existing.ID)
		if err != nil {
			return data, err
		}
		if exists {
			return data, errs.ErrSlugAlreadyUsed
		}
	}

	image := resolvedImage{URL: existing.Image, FileID: existing.ImageFileID}
	if req.Image != "" && req.Image != existing.Image {
		image, err = s.resolveImage(ctx, req.Image, req.Slug, existing.Image)
		if err != nil {
			return
		}
	}

	product := existing
	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = *req.Price
	product.Image = image.URL
	product.ImageFileID = image.FileID
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		if image.FileID != existing.ImageFileID {
			s.discardImage(ctx, image.FileID)
		}
		return
	}

	if existing.ImageFileID != "" && existing.ImageFileID != updated.ImageFileID {
		s.discardImage(ctx, existing.ImageFileID)
	}

	s.invalidate(ctx, ProductPaths(updated.Slug, existing.Slug)...)

	return dto.NewProductResponse(updated), nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (data dto.DeleteProductResponse, err error) {
	// the shared call outlives any single caller that disconnects
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.deletes.Do(id, func() (interface{}, error) {
		return s.deleteProduct(shared, id)
	})
	if err != nil {
		return
	}

	return v.(dto.DeleteProductResponse), nil
}

func (s *ProductServiceImpl) deleteProduct(ctx context.Context, id string) (data dto.DeleteProductResponse, err error) {
	defer func() { metrics.ProductOperations.WithLabelValues("delete", metrics.Outcome(err)).Inc() }()

	deleted, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return
	}

	s.discardImage(ctx, deleted.ImageFileID)
	s.invalidate(ctx, ProductPaths(deleted.Slug)...)

	return dto.DeleteProductResponse{
		ID:      deleted.ID.Hex(),
		Message: "Product deleted successfully",
	}, nil
}

type resolvedImage struct {
	URL    string
	FileID string
}

// resolveImage turns the submitted image reference into the URL to store. Inline data URIs are
// uploaded first; a failed upload fails the whole operation.
func (s *ProductServiceImpl) resolveImage(ctx context.Context, image, slug, fallback string) (resolvedImage, error) {
	switch {
	case image == "":
		return resolvedImage{URL: fallback}, nil
	case strings.HasPrefix(image, "data:image"):
		fileName := fmt.Sprintf("%s-%s.%s", slug, strings.ToLower(ulid.Make().String()), imageExt(image))
		uploaded, err := s.images.Upload(ctx, image, fileName)
		metrics.ImageUploads.WithLabelValues(metrics.Outcome(err)).Inc()
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "resolveImage").Str("slug", slug).Msg("image upload failed")
			return resolvedImage{}, fmt.Errorf("%w: %s", errs.ErrImageUpload, err.Error())
		}
		return resolvedImage{URL: uploaded.URL, FileID: uploaded.FileID}, nil
	default:
		return resolvedImage{URL: image}, nil
	}
}

// discardImage removes a hosted image. Failures are logged and never surface to the caller.
func (s *ProductServiceImpl) discardImage(ctx context.Context, fileID string) {
	if fileID == "" {
		return
	}
	if err := s.images.Delete(ctx, fileID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "discardImage").Str("file_id", fileID).Msg("image cleanup failed")
	}
}

// invalidate is best effort: the write already happened and cached views also expire on their own.
func (s *ProductServiceImpl) invalidate(ctx context.Context, paths ...string) {
	if err := s.invalidator.Invalidate(ctx, paths...); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "invalidate").Strs("paths", paths).Msg("view invalidation failed")
	}
}

// imageExt maps "data:image/png;base64,..." to "png". Unknown types fall back to jpg.
func imageExt(dataURI string) string {
	rest := strings.TrimPrefix(dataURI, "data:image/")
	end := strings.IndexAny(rest, ";,")
	if end <= 0 {
		return "jpg"
	}

	switch ext := strings.ToLower(rest[:end]); ext {
	case "jpeg", "pjpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "png", "gif", "webp", "avif", "bmp", "jpg":
		return ext
	default:
		return "jpg"
	}
}
