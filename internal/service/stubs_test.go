package service

// Shared in-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly — rollback semantics are exercised by the
// integration tests against a real Postgres.

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
)

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[uuid.UUID]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	cloned := *u
	r.users[u.UUID] = &cloned
	return nil
}

func (r *stubUserRepo) FindByUUID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cloned := *u
	r.users[u.UUID] = &cloned
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, u *model.User) error {
	delete(r.users, u.UUID)
	return nil
}

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product), nextID: 1}
}

func (r *stubProductRepo) add(name string, price decimal.Decimal, stock int) *model.Product {
	p := &model.Product{
		ID:    r.nextID,
		UUID:  uuid.New(),
		Name:  name,
		Price: price,
		Stock: stock,
		Type:  model.ProductTypeGranosBasicos,
	}
	r.nextID++
	r.products[p.UUID] = p
	cloned := *p
	return &cloned
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	cloned := *p
	r.products[p.UUID] = &cloned
	return nil
}

func (r *stubProductRepo) FindByUUID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter, threshold int) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if filter.LowStock && p.Stock >= threshold {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock < threshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cloned := *p
	r.products[p.UUID] = &cloned
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, p *model.Product) error {
	delete(r.products, p.UUID)
	return nil
}

func (r *stubProductRepo) FindByUUIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) SaveTx(_ *gorm.DB, p *model.Product) error {
	cloned := *p
	r.products[p.UUID] = &cloned
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── DebtRepository stub ──────────────────────────────────────────────────────

type stubDebtRepo struct {
	debts    map[uint]*model.Debt
	nextID   uint
	users    *stubUserRepo
	products *stubProductRepo
}

func newStubDebtRepo(users *stubUserRepo, products *stubProductRepo) *stubDebtRepo {
	return &stubDebtRepo{
		debts:    make(map[uint]*model.Debt),
		nextID:   1,
		users:    users,
		products: products,
	}
}

func (r *stubDebtRepo) DB() *gorm.DB { return nil }

func (r *stubDebtRepo) CreateTx(_ context.Context, _ *gorm.DB, d *model.Debt) error {
	d.ID = r.nextID
	r.nextID++
	d.CreatedAt = time.Now()
	for i := range d.Items {
		d.Items[i].ID = uint(i) + 1
		d.Items[i].DebtID = d.ID
	}
	cloned := cloneDebt(d)
	r.debts[d.ID] = cloned
	return nil
}

// FindByID mirrors the preloading repo: user and item products attached.
func (r *stubDebtRepo) FindByID(_ context.Context, id uint) (*model.Debt, error) {
	d, ok := r.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withRelations(d), nil
}

func (r *stubDebtRepo) FindByUUID(_ context.Context, id uuid.UUID) (*model.Debt, error) {
	for _, d := range r.debts {
		if d.UUID == id {
			return r.withRelations(d), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDebtRepo) FindByUUIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Debt, error) {
	for _, d := range r.debts {
		if d.UUID == id {
			return r.withRelations(d), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDebtRepo) FindByUser(_ context.Context, userUUID uuid.UUID) ([]model.Debt, error) {
	var out []model.Debt
	for _, d := range r.debts {
		for _, u := range r.users.users {
			if u.ID == d.UserID && u.UUID == userUUID {
				out = append(out, *r.withRelations(d))
			}
		}
	}
	return out, nil
}

func (r *stubDebtRepo) List(_ context.Context, filter dto.DebtFilter) ([]model.Debt, int64, decimal.Decimal, error) {
	var out []model.Debt
	total := decimal.Zero
	for _, d := range r.debts {
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		out = append(out, *r.withRelations(d))
		total = total.Add(d.Amount)
	}
	return out, int64(len(out)), total, nil
}

func (r *stubDebtRepo) Save(_ context.Context, d *model.Debt) error {
	r.debts[d.ID] = cloneDebt(d)
	return nil
}

func (r *stubDebtRepo) DeleteTx(_ *gorm.DB, d *model.Debt) error {
	delete(r.debts, d.ID)
	return nil
}

func (r *stubDebtRepo) FindCreatedBetween(_ context.Context, from, to time.Time) ([]model.Debt, error) {
	var out []model.Debt
	for _, d := range r.debts {
		if !d.CreatedAt.Before(from) && d.CreatedAt.Before(to) {
			out = append(out, *cloneDebt(d))
		}
	}
	return out, nil
}

func (r *stubDebtRepo) ListOverdue(_ context.Context, now time.Time) ([]model.Debt, error) {
	var out []model.Debt
	for _, d := range r.debts {
		if d.Overdue(now) {
			out = append(out, *r.withRelations(d))
		}
	}
	return out, nil
}

func (r *stubDebtRepo) CountItemsByProduct(_ context.Context, productID uint) (int64, error) {
	var count int64
	for _, d := range r.debts {
		for _, item := range d.Items {
			if item.ProductID == productID {
				count++
			}
		}
	}
	return count, nil
}

func (r *stubDebtRepo) withRelations(d *model.Debt) *model.Debt {
	out := cloneDebt(d)
	for _, u := range r.users.users {
		if u.ID == out.UserID {
			cloned := *u
			out.User = &cloned
		}
	}
	for i := range out.Items {
		for _, p := range r.products.products {
			if p.ID == out.Items[i].ProductID {
				cloned := *p
				out.Items[i].Product = &cloned
			}
		}
	}
	return out
}

func cloneDebt(d *model.Debt) *model.Debt {
	cloned := *d
	cloned.Items = make([]model.DebtItem, len(d.Items))
	copy(cloned.Items, d.Items)
	return &cloned
}

// ── ReportRepository stub ────────────────────────────────────────────────────

type stubReportRepo struct {
	daily   map[string]*model.ReportSalesDaily
	monthly map[[2]int]*model.ReportSalesMonthly
	nextID  uint
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{
		daily:   make(map[string]*model.ReportSalesDaily),
		monthly: make(map[[2]int]*model.ReportSalesMonthly),
		nextID:  1,
	}
}

func (r *stubReportRepo) FindDailyByDate(_ context.Context, day time.Time) (*model.ReportSalesDaily, error) {
	report, ok := r.daily[day.Format("2006-01-02")]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *report
	return &cloned, nil
}

func (r *stubReportRepo) SaveDaily(_ context.Context, report *model.ReportSalesDaily) error {
	if report.ID == 0 {
		report.ID = r.nextID
		r.nextID++
	}
	report.UpdatedAt = time.Now()
	cloned := *report
	r.daily[report.SaleDate.Format("2006-01-02")] = &cloned
	return nil
}

func (r *stubReportRepo) ListDaily(_ context.Context, _ dto.DailySalesFilter) ([]model.ReportSalesDaily, int64, error) {
	var out []model.ReportSalesDaily
	for _, report := range r.daily {
		out = append(out, *report)
	}
	return out, int64(len(out)), nil
}

func (r *stubReportRepo) FindMonthly(_ context.Context, year, month int) (*model.ReportSalesMonthly, error) {
	report, ok := r.monthly[[2]int{year, month}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *report
	return &cloned, nil
}

func (r *stubReportRepo) SaveMonthly(_ context.Context, report *model.ReportSalesMonthly) error {
	if report.ID == 0 {
		report.ID = r.nextID
		r.nextID++
	}
	report.UpdatedAt = time.Now()
	cloned := *report
	r.monthly[[2]int{report.Year, report.Month}] = &cloned
	return nil
}

func (r *stubReportRepo) ListMonthly(_ context.Context, _ dto.MonthlySalesFilter) ([]model.ReportSalesMonthly, int64, error) {
	var out []model.ReportSalesMonthly
	for _, report := range r.monthly {
		out = append(out, *report)
	}
	return out, int64(len(out)), nil
}
