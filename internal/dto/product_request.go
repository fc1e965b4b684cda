package dto

import "strings"

// DefaultCategory is stored when a product is created without a category.
const DefaultCategory = "general"

type ProductRequest struct {
	ID          string   `json:"-"`
	Name        string   `json:"name" validate:"required,max=100"`
	Slug        string   `json:"slug" validate:"required,slug"`
	Description string   `json:"description" validate:"max=1000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"max=50"`
	Inventory   *int     `json:"inventory" validate:"omitempty,gte=0"`
	Image       string   `json:"image" validate:"image_ref"`
}

// Normalize trims free-text fields and lowercases the slug before validation.
func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Image = strings.TrimSpace(r.Image)
}

type ProductFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}
