package dto

import "github.com/alimikegami/storefront-service/internal/catalog"

type CatalogRequest struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Query    catalog.QueryState
}

type CatalogResponse struct {
	Products       []ProductResponse  `json:"products"`
	Categories     []string           `json:"categories"`
	CategoryCounts map[string]int     `json:"categoryCounts"`
	MinPrice       float64            `json:"minPrice"`
	MaxPrice       float64            `json:"maxPrice"`
	PriceRange     catalog.PriceRange `json:"priceRange"`
	Category       string             `json:"category"`
	Sort           catalog.SortKey    `json:"sort"`
	Page           int                `json:"page"`
	TotalPages     int                `json:"totalPages"`
	TotalItems     int                `json:"totalItems"`
	FilteredCount  int                `json:"filteredCount"`
	PageSize       int                `json:"pageSize"`
	// Query is the canonical sort/page query string for the client to put back in its URL.
	Query string `json:"query"`
}

type DashboardResponse struct {
	Total      int               `json:"total"`
	OutOfStock int               `json:"outOfStock"`
	LowStock   int               `json:"lowStock"`
	InStock    int               `json:"inStock"`
	HighStock  int               `json:"highStock"`
	Products   []ProductResponse `json:"products"`
}

type RecommendationsResponse struct {
	Urgent  []ProductResponse `json:"urgent"`
	Popular []ProductResponse `json:"popular"`
}
