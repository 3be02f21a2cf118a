package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jewellerymart/catalog/internal/events"
	"github.com/jewellerymart/catalog/internal/logging"
	"github.com/jewellerymart/catalog/internal/models"
	"github.com/jewellerymart/catalog/internal/pricing"
	"github.com/jewellerymart/catalog/internal/repo"
	"github.com/jewellerymart/catalog/internal/transport"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// CreateOrder validates the three parallel line-item sequences, prices every
// line from the products' current prices and persists the order with the
// total frozen in. Later price changes never touch an existing order.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrValidation)
	}
	if len(req.ProductIDs) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if len(req.ProductIDs) != len(req.Quantities) || len(req.ProductIDs) != len(req.Grams) {
		return nil, fmt.Errorf("%w: productIds, quantities and grams must have equal length", ErrValidation)
	}

	var total float64
	for i, pid := range req.ProductIDs {
		if req.Quantities[i] < 0 {
			return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
		}
		if req.Grams[i] < 0 {
			return nil, fmt.Errorf("%w: grams must be >= 0", ErrValidation)
		}

		prod, err := s.Repo.GetProduct(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %s", ErrNotFound, pid)
			}
			return nil, err
		}

		total += pricing.LineTotal(prod.Price, req.Grams[i], req.Quantities[i])
	}

	order := &models.Order{
		UserID:      req.UserID,
		ProductIDs:  append([]string(nil), req.ProductIDs...),
		Quantities:  append([]int(nil), req.Quantities...),
		Grams:       append([]float64(nil), req.Grams...),
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publishOrder(ctx, created)
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrValidation)
	}
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) publishOrder(ctx context.Context, order *models.Order) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalAmount,
	}
	if err := s.Events.PublishEvent(ctx, "order_events", order.UserID, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "error", err)
	}
}
