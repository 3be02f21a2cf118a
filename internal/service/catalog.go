package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jewellerymart/catalog/internal/cache"
	"github.com/jewellerymart/catalog/internal/events"
	"github.com/jewellerymart/catalog/internal/logging"
	"github.com/jewellerymart/catalog/internal/models"
	"github.com/jewellerymart/catalog/internal/query"
	"github.com/jewellerymart/catalog/internal/repo"
	"github.com/jewellerymart/catalog/internal/transport"
)

// Searcher resolves the search retrieval step against an external index.
type Searcher interface {
	Search(ctx context.Context, term string) ([]models.Product, error)
}

// CatalogService orchestrates product reads and writes. Events, Cache and
// Search are optional collaborators; a nil value disables the concern.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Cache  *cache.ProductCache
	Search Searcher
}

// ListProducts retrieves the candidate set (search index when configured,
// database otherwise) and runs it through the query engine.
func (s *CatalogService) ListProducts(ctx context.Context, spec query.Spec) ([]models.Product, error) {
	var (
		candidates []models.Product
		err        error
	)
	if spec.Search != "" && s.Search != nil {
		candidates, err = s.Search.Search(ctx, spec.Search)
	} else {
		candidates, err = s.Repo.ListProducts(ctx, spec.Search)
	}
	if err != nil {
		return nil, err
	}

	return query.Apply(candidates, spec), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if s.Cache != nil {
		prod, err := s.Cache.Get(ctx, id)
		if err != nil {
			logging.FromContext(ctx).Warn("product_cache_get_failed", "error", err)
		} else if prod != nil {
			return prod, nil
		}
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, prod); err != nil {
			logging.FromContext(ctx).Warn("product_cache_set_failed", "error", err)
		}
	}
	return prod, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Price); err != nil {
		return nil, err
	}

	prod := &models.Product{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		MetalType:   req.MetalType,
		Image:       req.Image,
		Description: req.Description,
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.ID, map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})
	return created, nil
}

// UpdateProduct replaces the six mutable fields of an existing product.
// The new record is built as a value before anything is written, so a failed
// save never leaves a half-mutated product behind.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req transport.UpdateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Price); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}

	updated := applyUpdate(*existing, req)
	saved, err := s.Repo.SaveProduct(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, saved.ID, map[string]any{
		"type":      "product_updated",
		"productID": saved.ID,
		"name":      saved.Name,
	})
	return saved, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

// applyUpdate is pure: it returns a new record with the six mutable fields
// replaced and the id untouched.
func applyUpdate(existing models.Product, req transport.UpdateProductRequest) models.Product {
	existing.Name = req.Name
	existing.Price = req.Price
	existing.Category = req.Category
	existing.MetalType = req.MetalType
	existing.Image = req.Image
	existing.Description = req.Description
	return existing
}

func validateProduct(name string, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, "product_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "error", err)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("product_cache_invalidate_failed", "error", err)
	}
}
