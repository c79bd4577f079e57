package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// productCacheTTL is short on purpose: stock moves with every debt, so a
// cached read is only a hint.
const productCacheTTL = 30 * time.Second

// ProductService manages the catalog. Stock mutations outside debt creation
// (restock, withdraw) go through the inventory ledger so the same row-lock
// discipline applies everywhere.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error)
	Withdraw(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	debtRepo  repository.DebtRepository
	inventory InventoryService
	cache     *redis.Client // nil disables caching
}

func NewProductService(
	repo repository.ProductRepository,
	debtRepo repository.DebtRepository,
	inventory InventoryService,
	cache *redis.Client,
) ProductService {
	return &productService{repo: repo, debtRepo: debtRepo, inventory: inventory, cache: cache}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !model.ProductType(req.Type).Valid() {
		return nil, apierror.InvalidArgument("unknown product type: %s", req.Type)
	}

	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("product with name %q already exists", req.Name)
	}

	p := model.Product{
		UUID:  uuid.New(),
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
		Type:  model.ProductType(req.Type),
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	log.Info().Str("product_uuid", p.UUID.String()).Str("name", p.Name).Msg("product created")
	return productToResponse(&p), nil
}

func (s *productService) FindByUUID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := productToResponse(p)
	s.cacheSet(ctx, resp)
	return resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	products, total, err := s.repo.List(ctx, filter, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data:            data,
		Total:           total,
		Page:            filter.Page,
		Limit:           filter.Limit,
		TotalPages:      totalPages,
		HasNextPage:     filter.Page < totalPages,
		HasPreviousPage: filter.Page > 1,
	}, nil
}

func (s *productService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.inventory.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != p.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apierror.Conflict("product with name %q already exists", *req.Name)
		}
		p.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.GreaterThan(decimal.Zero) {
			return nil, apierror.InvalidArgument("product price must be greater than 0")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierror.InvalidArgument("product stock cannot be negative")
		}
		p.Stock = *req.Stock
	}
	if req.Type != nil {
		if !model.ProductType(*req.Type).Valid() {
			return nil, apierror.InvalidArgument("unknown product type: %s", *req.Type)
		}
		p.Type = model.ProductType(*req.Type)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, id)

	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.debtRepo.CountItemsByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apierror.Conflict(
			"product %q is referenced by %d debt item(s) and cannot be deleted", p.Name, inUse,
		)
	}

	if err := s.repo.Delete(ctx, p); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, id)

	log.Info().Str("product_uuid", id.String()).Str("name", p.Name).Msg("product deleted")
	return nil
}

func (s *productService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	var p *model.Product
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		p, err = s.inventory.Release(ctx, tx, id, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, id)

	log.Info().
		Str("product_uuid", id.String()).
		Int("quantity", quantity).
		Int("stock", p.Stock).
		Msg("product restocked")
	return productToResponse(p), nil
}

func (s *productService) Withdraw(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	var p *model.Product
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		p, err = s.inventory.Reserve(ctx, tx, id, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, id)

	log.Info().
		Str("product_uuid", id.String()).
		Int("quantity", quantity).
		Int("stock", p.Stock).
		Msg("stock withdrawn")
	return productToResponse(p), nil
}

func (s *productService) findProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product with UUID %s not found", id)
		}
		return nil, err
	}
	return p, nil
}

// ── Cache ────────────────────────────────────────────────────────────────────
// Cache failures are logged and otherwise ignored — the database is the
// source of truth.

func productCacheKey(id string) string { return fmt.Sprintf("product:%s", id) }

func (s *productService) cacheGet(ctx context.Context, id uuid.UUID) *dto.ProductResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, productCacheKey(id.String())).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("product cache read failed")
		}
		return nil
	}
	var resp dto.ProductResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *productService) cacheSet(ctx context.Context, resp *dto.ProductResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKey(resp.UUID), raw, productCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("product cache write failed")
	}
}

func (s *productService) cacheInvalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(id.String())).Err(); err != nil {
		log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		UUID:      p.UUID.String(),
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Type:      string(p.Type),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
