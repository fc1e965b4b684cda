package dto

import (
	"time"

	"github.com/alimikegami/storefront-service/internal/domain"
)

type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Category    string             `json:"category"`
	Inventory   int                `json:"inventory"`
	StockStatus domain.StockStatus `json:"stockStatus"`
	Image       string             `json:"image"`
	RatingCount int                `json:"ratingCount"`
	LastUpdated time.Time          `json:"lastUpdated"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Inventory:   p.Inventory,
		StockStatus: p.StockStatus(),
		Image:       p.Image,
		RatingCount: p.RatingCount,
		LastUpdated: p.LastUpdated,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

type DeleteProductResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
