package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LowStockThreshold is the canonical boundary between "Low Stock" and "In Stock".
const LowStockThreshold = 10

type StockStatus string

const (
	OutOfStock StockStatus = "Out of Stock"
	LowStock   StockStatus = "Low Stock"
	InStock    StockStatus = "In Stock"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Inventory   int                `bson:"inventory" json:"inventory"`
	Image       string             `bson:"image" json:"image"`
	ImageFileID string             `bson:"image_file_id,omitempty" json:"-"`
	RatingCount int                `bson:"rating_count,omitempty" json:"ratingCount,omitempty"`
	LastUpdated time.Time          `bson:"last_updated" json:"lastUpdated"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (p Product) StockStatus() StockStatus {
	return StockStatusOf(p.Inventory)
}

func StockStatusOf(inventory int) StockStatus {
	switch {
	case inventory <= 0:
		return OutOfStock
	case inventory < LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}
