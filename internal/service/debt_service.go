package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/event"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// DebtService is the write-side of the ledger: it builds and persists debt
// aggregates as one atomic unit of work, governs status transitions, and
// publishes the domain events the report recomputation consumes.
type DebtService interface {
	Create(ctx context.Context, callerUUID uuid.UUID, req dto.CreateDebtRequest) (*dto.DebtResponse, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*dto.DebtResponse, error)
	List(ctx context.Context, filter dto.DebtFilter) (*dto.DebtListResponse, error)
	FindByUser(ctx context.Context, userUUID uuid.UUID) ([]dto.DebtResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DebtStatus) (*dto.DebtResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Overdue(ctx context.Context) ([]dto.DebtResponse, error)
	UserStats(ctx context.Context, userUUID uuid.UUID) (*dto.UserDebtStats, error)
}

type debtService struct {
	repo      repository.DebtRepository
	userRepo  repository.UserRepository
	inventory InventoryService
	bus       event.Bus
}

func NewDebtService(
	repo repository.DebtRepository,
	userRepo repository.UserRepository,
	inventory InventoryService,
	bus event.Bus,
) DebtService {
	return &debtService{
		repo:      repo,
		userRepo:  userRepo,
		inventory: inventory,
		bus:       bus,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────
// All-or-nothing debt creation:
//   1. Due date must be in the future; duplicate products rejected — both
//      before any stock is touched
//   2. BEGIN TX: resolve user, then per item (in input order) lock+decrement
//      stock and snapshot the unit price
//   3. COMMIT — any failure rolls back every reservation and persisted row
//   4. Re-read the persisted debt with relations (canonical return value)
//   5. Publish debt-created (best-effort, handled by the bus)

func (s *debtService) Create(ctx context.Context, callerUUID uuid.UUID, req dto.CreateDebtRequest) (*dto.DebtResponse, error) {
	userUUID, err := uuid.Parse(req.UserUUID)
	if err != nil {
		return nil, apierror.InvalidArgument("invalid user_uuid: %s", req.UserUUID)
	}

	// 1a. Due date strictly in the future — rejected before any stock is touched
	if !req.DueDate.After(time.Now()) {
		return nil, apierror.InvalidArgument("payment date must be in the future")
	}

	// 1b. Duplicate product detection — report every duplicate, not just the first
	if dups := duplicateProducts(req.Products); len(dups) > 0 {
		return nil, apierror.InvalidArgument(
			"duplicate products found in request: %s", strings.Join(dups, ", "),
		)
	}

	log.Info().
		Str("caller_uuid", callerUUID.String()).
		Str("user_uuid", req.UserUUID).
		Int("products", len(req.Products)).
		Msg("creating debt")

	var debt model.Debt
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// 2a. Resolve the debtor
		user, err := s.userRepo.FindByUUID(ctx, userUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("user with UUID %s not found", req.UserUUID)
			}
			return err
		}
		if user.IsDelinquent {
			log.Warn().Str("user_uuid", user.UUID.String()).Msg("creating debt for delinquent user")
		}

		// 2b. Reserve stock item by item, in input order, snapshotting prices.
		// A late failure leaves earlier reservations in place — the rollback
		// of this transaction undoes them all.
		totalAmount := decimal.Zero
		var items []model.DebtItem
		for _, in := range req.Products {
			if in.Quantity <= 0 {
				return apierror.InvalidArgument("product quantity must be greater than 0")
			}
			productUUID, err := uuid.Parse(in.ProductUUID)
			if err != nil {
				return apierror.InvalidArgument("invalid product_uuid: %s", in.ProductUUID)
			}

			p, err := s.inventory.Reserve(ctx, tx, productUUID, in.Quantity)
			if err != nil {
				return err
			}

			subtotal := p.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
			totalAmount = totalAmount.Add(subtotal)

			items = append(items, model.DebtItem{
				UUID:      uuid.New(),
				ProductID: p.ID,
				Quantity:  in.Quantity,
				Price:     p.Price,
			})
		}

		// Defensive: unreachable given the quantity and price checks above
		if !totalAmount.GreaterThan(decimal.Zero) {
			return apierror.InvalidArgument("debt total amount must be greater than 0")
		}

		debt = model.Debt{
			UUID:    uuid.New(),
			UserID:  user.ID,
			DueDate: req.DueDate,
			Status:  model.DebtStatusActive,
			Amount:  totalAmount,
			Items:   items,
		}
		return s.repo.CreateTx(ctx, tx, &debt)
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Canonical re-read with all relations populated
	created, err := s.repo.FindByID(ctx, debt.ID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("debt_uuid", created.UUID.String()).
		Str("amount", created.Amount.String()).
		Msg("debt created")

	// 5. Fires only after successful commit; handler failures are isolated
	s.bus.Publish(ctx, event.DebtEvent{Name: event.DebtCreated, Debt: created})

	return debtToResponse(created), nil
}

// duplicateProducts returns every product UUID that appears more than once,
// each listed once.
func duplicateProducts(products []dto.DebtProductInput) []string {
	seen := make(map[string]int, len(products))
	for _, p := range products {
		seen[p.ProductUUID]++
	}
	var dups []string
	for _, p := range products {
		if seen[p.ProductUUID] > 1 {
			dups = append(dups, p.ProductUUID)
			seen[p.ProductUUID] = 0 // report each duplicate once
		}
	}
	return dups
}

// ── UpdateStatus ─────────────────────────────────────────────────────────────

func (s *debtService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DebtStatus) (*dto.DebtResponse, error) {
	if !status.Valid() {
		return nil, apierror.InvalidArgument("unknown debt status: %s", status)
	}

	debt, err := s.findDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	if !debt.Status.CanTransition(status) {
		return nil, apierror.InvalidArgument(
			"invalid status transition from %s to %s", debt.Status, status,
		)
	}

	previous := debt.Status
	debt.Status = status
	if err := s.repo.Save(ctx, debt); err != nil {
		return nil, err
	}

	log.Info().
		Str("debt_uuid", debt.UUID.String()).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("debt status updated")

	s.bus.Publish(ctx, event.DebtEvent{
		Name:           event.DebtStatusUpdated,
		Debt:           debt,
		PreviousStatus: &previous,
	})

	return debtToResponse(debt), nil
}

// ── Cancel ───────────────────────────────────────────────────────────────────
// Cancellation is the inverse of creation, in one unit of work: restore stock
// for every item, publish the cancellation event, then delete the debt
// (cascade-deleting its items). Failure at any step aborts the whole thing.

func (s *debtService) Cancel(ctx context.Context, id uuid.UUID) error {
	var debt *model.Debt
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Load under the row lock so a concurrent cancel blocks here and
		// then fails the status check (or not-found) instead of releasing
		// stock twice.
		var err error
		debt, err = s.repo.FindByUUIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("debt with UUID %s not found", id)
			}
			return err
		}

		if debt.Status != model.DebtStatusActive && debt.Status != model.DebtStatusPending {
			return apierror.InvalidArgument("cannot cancel debt with status: %s", debt.Status)
		}

		for _, item := range debt.Items {
			if item.Product == nil {
				return apierror.NotFound("product for debt item %s not loaded", item.UUID)
			}
			if _, err := s.inventory.Release(ctx, tx, item.Product.UUID, item.Quantity); err != nil {
				return err
			}
		}

		s.bus.Publish(ctx, event.DebtEvent{Name: event.DebtCancelled, Debt: debt})

		return s.repo.DeleteTx(tx, debt)
	})
	if txErr != nil {
		return txErr
	}

	log.Info().Str("debt_uuid", debt.UUID.String()).Msg("debt cancelled and stock restored")
	return nil
}

// ── Read side ────────────────────────────────────────────────────────────────

func (s *debtService) FindByUUID(ctx context.Context, id uuid.UUID) (*dto.DebtResponse, error) {
	debt, err := s.findDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	return debtToResponse(debt), nil
}

func (s *debtService) findDebt(ctx context.Context, id uuid.UUID) (*model.Debt, error) {
	debt, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("debt with UUID %s not found", id)
		}
		return nil, err
	}
	return debt, nil
}

func (s *debtService) List(ctx context.Context, filter dto.DebtFilter) (*dto.DebtListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	debts, total, totalAmount, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.DebtResponse, 0, len(debts))
	for i := range debts {
		data = append(data, *debtToResponse(&debts[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.DebtListResponse{
		Data:            data,
		Total:           total,
		Page:            filter.Page,
		Limit:           filter.Limit,
		TotalPages:      totalPages,
		HasNextPage:     filter.Page < totalPages,
		HasPreviousPage: filter.Page > 1,
		TotalAmount:     totalAmount,
	}, nil
}

func (s *debtService) FindByUser(ctx context.Context, userUUID uuid.UUID) ([]dto.DebtResponse, error) {
	debts, err := s.repo.FindByUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, *debtToResponse(&debts[i]))
	}
	return out, nil
}

func (s *debtService) Overdue(ctx context.Context) ([]dto.DebtResponse, error) {
	debts, err := s.repo.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, *debtToResponse(&debts[i]))
	}
	return out, nil
}

func (s *debtService) UserStats(ctx context.Context, userUUID uuid.UUID) (*dto.UserDebtStats, error) {
	debts, err := s.repo.FindByUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	stats := &dto.UserDebtStats{
		TotalDebts:   len(debts),
		TotalAmount:  decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
	}
	for i := range debts {
		d := &debts[i]
		stats.TotalAmount = stats.TotalAmount.Add(d.Amount)
		switch d.Status {
		case model.DebtStatusActive, model.DebtStatusPending:
			stats.ActiveDebts++
			stats.TotalPending = stats.TotalPending.Add(d.Amount)
		case model.DebtStatusPaid, model.DebtStatusSettled:
			stats.PaidDebts++
			stats.TotalPaid = stats.TotalPaid.Add(d.Amount)
		}
	}
	return stats, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func debtToResponse(d *model.Debt) *dto.DebtResponse {
	items := make([]dto.DebtItemResponse, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		var product dto.ProductResponse
		if item.Product != nil {
			product = *productToResponse(item.Product)
		}
		items = append(items, dto.DebtItemResponse{
			UUID:     item.UUID.String(),
			Product:  product,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		})
	}

	var user dto.UserResponse
	if d.User != nil {
		user = *userToResponse(d.User)
	}

	return &dto.DebtResponse{
		UUID:      d.UUID.String(),
		User:      user,
		DueDate:   d.DueDate,
		Status:    string(d.Status),
		Amount:    d.Amount,
		Products:  items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
