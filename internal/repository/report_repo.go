package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/model"
)

// ReportRepository defines the data access contract for materialized sales
// buckets. Save performs the upsert half of the recomputation: created rows
// carry a zero ID, existing rows keep theirs.
type ReportRepository interface {
	FindDailyByDate(ctx context.Context, day time.Time) (*model.ReportSalesDaily, error)
	SaveDaily(ctx context.Context, r *model.ReportSalesDaily) error
	ListDaily(ctx context.Context, filter dto.DailySalesFilter) ([]model.ReportSalesDaily, int64, error)

	FindMonthly(ctx context.Context, year, month int) (*model.ReportSalesMonthly, error)
	SaveMonthly(ctx context.Context, r *model.ReportSalesMonthly) error
	ListMonthly(ctx context.Context, filter dto.MonthlySalesFilter) ([]model.ReportSalesMonthly, int64, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) FindDailyByDate(ctx context.Context, day time.Time) (*model.ReportSalesDaily, error) {
	var report model.ReportSalesDaily
	err := r.db.WithContext(ctx).
		Where("sale_date = ?", day.Format("2006-01-02")).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) SaveDaily(ctx context.Context, report *model.ReportSalesDaily) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepo) ListDaily(ctx context.Context, filter dto.DailySalesFilter) ([]model.ReportSalesDaily, int64, error) {
	var reports []model.ReportSalesDaily
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ReportSalesDaily{})
	if filter.StartDate != "" {
		q = q.Where("sale_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("sale_date <= ?", filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("sale_date DESC").Limit(filter.Limit).Offset(offset).Find(&reports).Error
	return reports, total, err
}

func (r *reportRepo) FindMonthly(ctx context.Context, year, month int) (*model.ReportSalesMonthly, error) {
	var report model.ReportSalesMonthly
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) SaveMonthly(ctx context.Context, report *model.ReportSalesMonthly) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepo) ListMonthly(ctx context.Context, filter dto.MonthlySalesFilter) ([]model.ReportSalesMonthly, int64, error) {
	var reports []model.ReportSalesMonthly
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ReportSalesMonthly{})
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("year DESC, month DESC").Limit(filter.Limit).Offset(offset).Find(&reports).Error
	return reports, total, err
}
