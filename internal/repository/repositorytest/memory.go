// Package repositorytest provides in-memory stand-ins for the repository interfaces.
package repositorytest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alimikegami/storefront-service/internal/domain"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository mirrors the mongo repository semantics, including the unique slug index.
type ProductRepository struct {
	mu       sync.Mutex
	products []domain.Product
	clock    time.Time

	// FailWrites, when set, is returned by every mutating call.
	FailWrites error
	Deletes    int
}

func NewProductRepository(seed ...domain.Product) *ProductRepository {
	r := &ProductRepository{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, p := range seed {
		if _, err := r.AddProduct(context.Background(), p); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *ProductRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *ProductRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

func (r *ProductRepository) EnsureIndexes(context.Context) error { return nil }

func (r *ProductRepository) AddProduct(_ context.Context, data domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites != nil {
		return domain.Product{}, r.FailWrites
	}
	if r.indexOfSlug(data.Slug, primitive.NilObjectID) >= 0 {
		return domain.Product{}, errs.ErrSlugAlreadyUsed
	}

	now := r.tick()
	data.ID = primitive.NewObjectID()
	data.CreatedAt, data.UpdatedAt, data.LastUpdated = now, now, now
	r.products = append(r.products, data)
	return data, nil
}

func (r *ProductRepository) GetProducts(_ context.Context, filter dto.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.Product{}
	search := strings.ToLower(filter.Search)
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	})
	return out, nil
}

func (r *ProductRepository) GetProductBySlug(_ context.Context, slug string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOfSlug(slug, primitive.NilObjectID); i >= 0 {
		return r.products[i], nil
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *ProductRepository) GetProductByID(_ context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOfID(oid); i >= 0 {
		return r.products[i], nil
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *ProductRepository) SlugExists(_ context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOfSlug(slug, excludeID) >= 0, nil
}

func (r *ProductRepository) UpdateProduct(_ context.Context, data domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites != nil {
		return domain.Product{}, r.FailWrites
	}

	i := r.indexOfID(data.ID)
	if i < 0 {
		return domain.Product{}, errs.ErrNotFound
	}
	if r.indexOfSlug(data.Slug, data.ID) >= 0 {
		return domain.Product{}, errs.ErrSlugAlreadyUsed
	}

	stored := r.products[i]
	now := r.tick()
	data.CreatedAt = stored.CreatedAt
	data.UpdatedAt = now
	data.LastUpdated = maxTime(stored.LastUpdated, now)
	r.products[i] = data
	return data, nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites != nil {
		return domain.Product{}, r.FailWrites
	}

	i := r.indexOfID(oid)
	if i < 0 {
		return domain.Product{}, errs.ErrNotFound
	}

	deleted := r.products[i]
	r.products = slices.Delete(r.products, i, i+1)
	r.Deletes++
	return deleted, nil
}

func (r *ProductRepository) indexOfSlug(slug string, excludeID primitive.ObjectID) int {
	return slices.IndexFunc(r.products, func(p domain.Product) bool {
		return p.Slug == slug && p.ID != excludeID
	})
}

func (r *ProductRepository) indexOfID(id primitive.ObjectID) int {
	return slices.IndexFunc(r.products, func(p domain.Product) bool {
		return p.ID == id
	})
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
