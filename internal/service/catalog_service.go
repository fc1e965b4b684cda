package service

import (
	"cmp"
	"context"
	"net/url"
	"slices"

	"github.com/alimikegami/storefront-service/internal/catalog"
	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	catalogPath      = "/"
	dashboardPath    = "/dashboard"
	highStockAbove   = 20
	recommendedLimit = 3
)

type CatalogServiceImpl struct {
	repo  repository.MongoDBProductRepository
	views repository.ViewCache
}

func CreateCatalogService(repo repository.MongoDBProductRepository, views repository.ViewCache) CatalogService {
	return &CatalogServiceImpl{repo: repo, views: views}
}

// loadProducts returns the full product set, read through the cached catalog view.
func (s *CatalogServiceImpl) loadProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	found, err := s.views.Get(ctx, catalogPath, &products)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "loadProducts").Msg("view cache read failed")
	}
	if found {
		return products, nil
	}

	products, err = s.repo.GetProducts(ctx, dto.ProductFilter{})
	if err != nil {
		return nil, err
	}

	if err := s.views.Set(ctx, catalogPath, products); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "loadProducts").Msg("view cache write failed")
	}

	return products, nil
}

func (s *CatalogServiceImpl) Browse(ctx context.Context, req dto.CatalogRequest) (data dto.CatalogResponse, err error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return
	}

	bounds := catalog.PriceBounds(products)
	priceRange := bounds.Full()
	if req.MinPrice != nil {
		priceRange.Low = *req.MinPrice
	}
	if req.MaxPrice != nil {
		priceRange.High = *req.MaxPrice
	}

	browser := catalog.RestoreBrowser(products, req.Category, priceRange, req.Query)
	res := browser.View()
	query := browser.Query()

	return dto.CatalogResponse{
		Products:       dto.NewProductResponses(res.Visible),
		Categories:     res.Categories,
		CategoryCounts: res.CategoryCounts,
		MinPrice:       bounds.Min,
		MaxPrice:       bounds.Max,
		PriceRange:     browser.PriceRange(),
		Category:       browser.Category(),
		Sort:           query.Sort,
		Page:           res.CurrentPage,
		TotalPages:     res.TotalPages,
		TotalItems:     len(products),
		FilteredCount:  len(res.Filtered),
		PageSize:       catalog.PageSize,
		Query:          query.Encode(url.Values{}).Encode(),
	}, nil
}

// Dashboard summarises stock levels for the admin view. Low stock uses the same threshold as the
// storefront badge.
func (s *CatalogServiceImpl) Dashboard(ctx context.Context) (data dto.DashboardResponse, err error) {
	if found, cacheErr := s.views.Get(ctx, dashboardPath, &data); cacheErr == nil && found {
		return data, nil
	}

	products, err := s.repo.GetProducts(ctx, dto.ProductFilter{})
	if err != nil {
		return
	}

	data = dto.DashboardResponse{
		Total:    len(products),
		Products: dto.NewProductResponses(products),
	}
	for _, p := range products {
		switch p.StockStatus() {
		case domain.OutOfStock:
			data.OutOfStock++
		case domain.LowStock:
			data.LowStock++
		case domain.InStock:
			data.InStock++
		}
		if p.Inventory > highStockAbove {
			data.HighStock++
		}
	}

	if cacheErr := s.views.Set(ctx, dashboardPath, data); cacheErr != nil {
		log.Ctx(ctx).Warn().Err(cacheErr).Str("component", "Dashboard").Msg("view cache write failed")
	}

	return data, nil
}

// Recommendations picks up to three low-stock products and the three best-stocked ones.
func (s *CatalogServiceImpl) Recommendations(ctx context.Context) (data dto.RecommendationsResponse, err error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return
	}

	var urgent, popular []domain.Product
	for _, p := range products {
		switch p.StockStatus() {
		case domain.LowStock:
			if len(urgent) < recommendedLimit {
				urgent = append(urgent, p)
			}
		case domain.InStock:
			popular = append(popular, p)
		}
	}

	slices.SortStableFunc(popular, func(a, b domain.Product) int {
		return cmp.Compare(b.Inventory, a.Inventory)
	})
	if len(popular) > recommendedLimit {
		popular = popular[:recommendedLimit]
	}

	return dto.RecommendationsResponse{
		Urgent:  dto.NewProductResponses(urgent),
		Popular: dto.NewProductResponses(popular),
	}, nil
}
