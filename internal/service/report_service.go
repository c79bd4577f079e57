package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/event"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/repository"
)

// ReportService maintains the materialized daily and monthly sales buckets.
// Buckets are never adjusted incrementally: every debt event triggers a full
// recomputation of the affected day and month from the debts table, so a
// report row is always reproducible from the current ledger state.
type ReportService interface {
	// HandleDebtEvent recomputes the buckets covering the event's debt.
	// Registered on the event bus for every debt event.
	HandleDebtEvent(ctx context.Context, ev event.DebtEvent) error

	RecomputeDaily(ctx context.Context, day time.Time) error
	RecomputeMonthly(ctx context.Context, year, month int) error

	FindDailySales(ctx context.Context, filter dto.DailySalesFilter) (*dto.DailySalesListResponse, error)
	FindMonthlySales(ctx context.Context, filter dto.MonthlySalesFilter) (*dto.MonthlySalesListResponse, error)
	DailyByDate(ctx context.Context, day time.Time) (*dto.DailySalesResponse, error)
	Monthly(ctx context.Context, year, month int) (*dto.MonthlySalesResponse, error)
}

type reportService struct {
	repo     repository.ReportRepository
	debtRepo repository.DebtRepository
}

func NewReportService(repo repository.ReportRepository, debtRepo repository.DebtRepository) ReportService {
	return &reportService{repo: repo, debtRepo: debtRepo}
}

func (s *reportService) HandleDebtEvent(ctx context.Context, ev event.DebtEvent) error {
	if ev.Debt == nil {
		return nil
	}
	day := ev.Debt.CreatedAt

	if err := s.RecomputeDaily(ctx, day); err != nil {
		log.Error().Err(err).
			Str("event", ev.Name).
			Str("date", day.Format("2006-01-02")).
			Msg("daily sales recomputation failed")
		return err
	}
	if err := s.RecomputeMonthly(ctx, day.Year(), int(day.Month())); err != nil {
		log.Error().Err(err).
			Str("event", ev.Name).
			Int("year", day.Year()).
			Int("month", int(day.Month())).
			Msg("monthly sales recomputation failed")
		return err
	}
	return nil
}

// salesAggregate is the in-memory accumulator shared by both bucket kinds.
type salesAggregate struct {
	totalSales        decimal.Decimal
	totalTransactions int
	totalProductsSold int
	activeCount       int
	pendingCount      int
	paidCount         int
	settledCount      int
	totalActiveAmount decimal.Decimal
	totalPaidAmount   decimal.Decimal
}

func aggregate(debts []model.Debt) salesAggregate {
	agg := salesAggregate{
		totalSales:        decimal.Zero,
		totalActiveAmount: decimal.Zero,
		totalPaidAmount:   decimal.Zero,
	}
	for i := range debts {
		d := &debts[i]
		agg.totalSales = agg.totalSales.Add(d.Amount)
		agg.totalTransactions++
		// Line items, not unit quantities.
		agg.totalProductsSold += len(d.Items)
		switch d.Status {
		case model.DebtStatusActive:
			agg.activeCount++
			agg.totalActiveAmount = agg.totalActiveAmount.Add(d.Amount)
		case model.DebtStatusPending:
			// Pending amounts count toward neither active nor paid totals.
			agg.pendingCount++
		case model.DebtStatusPaid:
			agg.paidCount++
			agg.totalPaidAmount = agg.totalPaidAmount.Add(d.Amount)
		case model.DebtStatusSettled:
			agg.settledCount++
			agg.totalPaidAmount = agg.totalPaidAmount.Add(d.Amount)
		}
	}
	return agg
}

func (a salesAggregate) averageSale() decimal.Decimal {
	if a.totalTransactions == 0 {
		return decimal.Zero
	}
	return a.totalSales.DivRound(decimal.NewFromInt(int64(a.totalTransactions)), 2)
}

func (s *reportService) RecomputeDaily(ctx context.Context, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	debts, err := s.debtRepo.FindCreatedBetween(ctx, start, end)
	if err != nil {
		return err
	}
	agg := aggregate(debts)

	report, err := s.repo.FindDailyByDate(ctx, start)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		report = &model.ReportSalesDaily{SaleDate: start}
	}

	report.TotalSales = agg.totalSales
	report.TotalTransactions = agg.totalTransactions
	report.TotalProductsSold = agg.totalProductsSold
	report.AverageSaleAmount = agg.averageSale()
	report.ActiveDebtsCount = agg.activeCount
	report.PendingDebtsCount = agg.pendingCount
	report.PaidDebtsCount = agg.paidCount
	report.SettledDebtsCount = agg.settledCount
	report.TotalActiveAmount = agg.totalActiveAmount
	report.TotalPaidAmount = agg.totalPaidAmount

	if err := s.repo.SaveDaily(ctx, report); err != nil {
		return err
	}

	log.Debug().
		Str("date", start.Format("2006-01-02")).
		Int("transactions", agg.totalTransactions).
		Str("total", agg.totalSales.String()).
		Msg("daily sales report recomputed")
	return nil
}

func (s *reportService) RecomputeMonthly(ctx context.Context, year, month int) error {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	debts, err := s.debtRepo.FindCreatedBetween(ctx, start, end)
	if err != nil {
		return err
	}
	agg := aggregate(debts)

	report, err := s.repo.FindMonthly(ctx, year, month)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		report = &model.ReportSalesMonthly{Year: year, Month: month}
	}

	// Calendar days in the month, so the daily average spreads the month's
	// sales over quiet days too.
	totalDays := end.AddDate(0, 0, -1).Day()
	avgDaily := agg.totalSales.DivRound(decimal.NewFromInt(int64(totalDays)), 2)

	report.TotalSales = agg.totalSales
	report.TotalTransactions = agg.totalTransactions
	report.TotalProductsSold = agg.totalProductsSold
	report.AverageSaleAmount = agg.averageSale()
	report.ActiveDebtsCount = agg.activeCount
	report.PendingDebtsCount = agg.pendingCount
	report.PaidDebtsCount = agg.paidCount
	report.SettledDebtsCount = agg.settledCount
	report.TotalActiveAmount = agg.totalActiveAmount
	report.TotalPaidAmount = agg.totalPaidAmount
	report.TotalDays = totalDays
	report.AverageDailySales = avgDaily

	if err := s.repo.SaveMonthly(ctx, report); err != nil {
		return err
	}

	log.Debug().
		Int("year", year).
		Int("month", month).
		Int("transactions", agg.totalTransactions).
		Msg("monthly sales report recomputed")
	return nil
}

// ── Read side ────────────────────────────────────────────────────────────────

func (s *reportService) FindDailySales(ctx context.Context, filter dto.DailySalesFilter) (*dto.DailySalesListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	reports, total, err := s.repo.ListDaily(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.DailySalesResponse, 0, len(reports))
	for i := range reports {
		data = append(data, dailyToResponse(&reports[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.DailySalesListResponse{
		Data:            data,
		Total:           total,
		Page:            filter.Page,
		Limit:           filter.Limit,
		TotalPages:      totalPages,
		HasNextPage:     filter.Page < totalPages,
		HasPreviousPage: filter.Page > 1,
	}, nil
}

func (s *reportService) FindMonthlySales(ctx context.Context, filter dto.MonthlySalesFilter) (*dto.MonthlySalesListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	reports, total, err := s.repo.ListMonthly(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MonthlySalesResponse, 0, len(reports))
	for i := range reports {
		data = append(data, monthlyToResponse(&reports[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.MonthlySalesListResponse{
		Data:            data,
		Total:           total,
		Page:            filter.Page,
		Limit:           filter.Limit,
		TotalPages:      totalPages,
		HasNextPage:     filter.Page < totalPages,
		HasPreviousPage: filter.Page > 1,
	}, nil
}

func (s *reportService) DailyByDate(ctx context.Context, day time.Time) (*dto.DailySalesResponse, error) {
	report, err := s.repo.FindDailyByDate(ctx, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("no sales report for %s", day.Format("2006-01-02"))
		}
		return nil, err
	}
	resp := dailyToResponse(report)
	return &resp, nil
}

func (s *reportService) Monthly(ctx context.Context, year, month int) (*dto.MonthlySalesResponse, error) {
	report, err := s.repo.FindMonthly(ctx, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("no sales report for %04d-%02d", year, month)
		}
		return nil, err
	}
	resp := monthlyToResponse(report)
	return &resp, nil
}

func dailyToResponse(r *model.ReportSalesDaily) dto.DailySalesResponse {
	return dto.DailySalesResponse{
		SaleDate:          r.SaleDate.Format("2006-01-02"),
		TotalSales:        r.TotalSales,
		TotalTransactions: r.TotalTransactions,
		TotalProductsSold: r.TotalProductsSold,
		AverageSaleAmount: r.AverageSaleAmount,
		ActiveDebtsCount:  r.ActiveDebtsCount,
		PendingDebtsCount: r.PendingDebtsCount,
		PaidDebtsCount:    r.PaidDebtsCount,
		SettledDebtsCount: r.SettledDebtsCount,
		TotalActiveAmount: r.TotalActiveAmount,
		TotalPaidAmount:   r.TotalPaidAmount,
		UpdatedAt:         r.UpdatedAt,
	}
}

func monthlyToResponse(r *model.ReportSalesMonthly) dto.MonthlySalesResponse {
	return dto.MonthlySalesResponse{
		Year:              r.Year,
		Month:             r.Month,
		TotalSales:        r.TotalSales,
		TotalTransactions: r.TotalTransactions,
		TotalProductsSold: r.TotalProductsSold,
		AverageSaleAmount: r.AverageSaleAmount,
		ActiveDebtsCount:  r.ActiveDebtsCount,
		PendingDebtsCount: r.PendingDebtsCount,
		PaidDebtsCount:    r.PaidDebtsCount,
		SettledDebtsCount: r.SettledDebtsCount,
		TotalActiveAmount: r.TotalActiveAmount,
		TotalPaidAmount:   r.TotalPaidAmount,
		TotalDays:         r.TotalDays,
		AverageDailySales: r.AverageDailySales,
		UpdatedAt:         r.UpdatedAt,
	}
}
