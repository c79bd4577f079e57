package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// lowStockThreshold triggers a warn-level observation when a reservation
// leaves a product at or below it. Fixed default, not configurable.
const lowStockThreshold = 10

// InventoryService owns product stock counts. Stock is only ever mutated
// through Reserve/Release, whose row lock (held until the surrounding
// transaction ends) prevents two concurrent reservations from both observing
// stale stock.
type InventoryService interface {
	// Reserve atomically reads-and-decrements stock inside tx. The exclusive
	// row lock blocks concurrent reservations on the same product until tx
	// commits or rolls back.
	Reserve(ctx context.Context, tx *gorm.DB, productUUID uuid.UUID, quantity int) (*model.Product, error)
	// Release increases stock by quantity inside tx. Used for direct restock
	// and for debt cancellation.
	Release(ctx context.Context, tx *gorm.DB, productUUID uuid.UUID, quantity int) (*model.Product, error)
	// HasStock is a read-only pre-check. Non-authoritative: a subsequent
	// Reserve may still fail due to a race — callers must not skip it.
	HasStock(ctx context.Context, productUUID uuid.UUID, quantity int) (bool, error)
	LowStock(ctx context.Context) ([]model.Product, error)
}

type inventoryService struct {
	repo repository.ProductRepository
}

func NewInventoryService(repo repository.ProductRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Reserve(ctx context.Context, tx *gorm.DB, productUUID uuid.UUID, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, apierror.InvalidArgument("quantity must be greater than 0")
	}

	p, err := s.repo.FindByUUIDForUpdateTx(tx, productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product with UUID %s not found", productUUID)
		}
		return nil, err
	}

	if p.Stock < quantity {
		return nil, apierror.InsufficientStock(
			"insufficient stock for product %q: available %d, requested %d",
			p.Name, p.Stock, quantity,
		)
	}

	p.Stock -= quantity
	if err := s.repo.SaveTx(tx, p); err != nil {
		return nil, err
	}

	if p.Stock < lowStockThreshold {
		log.Warn().
			Str("product_uuid", p.UUID.String()).
			Str("product", p.Name).
			Int("stock", p.Stock).
			Msg("low stock after reservation")
	}

	return p, nil
}

func (s *inventoryService) Release(ctx context.Context, tx *gorm.DB, productUUID uuid.UUID, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, apierror.InvalidArgument("quantity must be greater than 0")
	}

	p, err := s.repo.FindByUUIDForUpdateTx(tx, productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product with UUID %s not found", productUUID)
		}
		return nil, err
	}

	p.Stock += quantity
	if err := s.repo.SaveTx(tx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *inventoryService) HasStock(ctx context.Context, productUUID uuid.UUID, quantity int) (bool, error) {
	p, err := s.repo.FindByUUID(ctx, productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierror.NotFound("product with UUID %s not found", productUUID)
		}
		return false, err
	}
	return p.Stock >= quantity, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListLowStock(ctx, lowStockThreshold)
}
