package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/event"
	"github.com/jeffersontgc/credistore-be/internal/model"
)

type reportFixture struct {
	*debtFixture
	reports *stubReportRepo
	svc     ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	base := newDebtFixture(t)
	reports := newStubReportRepo()
	return &reportFixture{
		debtFixture: base,
		reports:     reports,
		svc:         NewReportService(reports, base.debts),
	}
}

func (f *reportFixture) handle(t *testing.T, created *dto.DebtResponse) {
	t.Helper()
	debt, err := f.debts.FindByUUID(context.Background(), uuid.MustParse(created.UUID))
	require.NoError(t, err)
	require.NoError(t, f.svc.HandleDebtEvent(context.Background(), event.DebtEvent{
		Name: event.DebtCreated,
		Debt: debt,
	}))
}

func TestHandleDebtEvent_BuildsDailyBucket(t *testing.T) {
	f := newReportFixture(t)
	first := f.createDebt(t, 2)  // 6.00
	second := f.createDebt(t, 4) // 12.00

	f.handle(t, first)
	f.handle(t, second)

	today := time.Now()
	daily, err := f.svc.DailyByDate(context.Background(), today)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(18.00).Equal(daily.TotalSales), "got %s", daily.TotalSales)
	assert.Equal(t, 2, daily.TotalTransactions)
	// one product line per debt regardless of quantity
	assert.Equal(t, 2, daily.TotalProductsSold)
	assert.True(t, decimal.NewFromFloat(9.00).Equal(daily.AverageSaleAmount))
	assert.Equal(t, 2, daily.ActiveDebtsCount)
	assert.Equal(t, 0, daily.PaidDebtsCount)
	assert.True(t, decimal.NewFromFloat(18.00).Equal(daily.TotalActiveAmount))
	assert.True(t, decimal.Zero.Equal(daily.TotalPaidAmount))
}

func TestHandleDebtEvent_BuildsMonthlyBucket(t *testing.T) {
	f := newReportFixture(t)
	created := f.createDebt(t, 3) // 9.00
	f.handle(t, created)

	now := time.Now()
	monthly, err := f.svc.Monthly(context.Background(), now.Year(), int(now.Month()))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(9.00).Equal(monthly.TotalSales))
	assert.Equal(t, 1, monthly.TotalTransactions)

	// the daily average spreads over every calendar day of the month
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	assert.Equal(t, daysInMonth, monthly.TotalDays)
	wantAvg := decimal.NewFromFloat(9.00).DivRound(decimal.NewFromInt(int64(daysInMonth)), 2)
	assert.True(t, wantAvg.Equal(monthly.AverageDailySales), "got %s want %s", monthly.AverageDailySales, wantAvg)
}

func TestHandleDebtEvent_PendingAmountsStayOutOfBothTotals(t *testing.T) {
	f := newReportFixture(t)
	created := f.createDebt(t, 2) // 6.00

	id := uuid.MustParse(created.UUID)
	_, err := f.debtFixture.svc.UpdateStatus(context.Background(), id, model.DebtStatusPending)
	require.NoError(t, err)

	debt, err := f.debts.FindByUUID(context.Background(), id)
	require.NoError(t, err)
	prev := model.DebtStatusActive
	require.NoError(t, f.svc.HandleDebtEvent(context.Background(), event.DebtEvent{
		Name:           event.DebtStatusUpdated,
		Debt:           debt,
		PreviousStatus: &prev,
	}))

	daily, err := f.svc.DailyByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, daily.PendingDebtsCount)
	assert.True(t, decimal.NewFromFloat(6.00).Equal(daily.TotalSales))
	assert.True(t, decimal.Zero.Equal(daily.TotalActiveAmount), "got %s", daily.TotalActiveAmount)
	assert.True(t, decimal.Zero.Equal(daily.TotalPaidAmount))
}

func TestHandleDebtEvent_RecomputationIsIdempotent(t *testing.T) {
	f := newReportFixture(t)
	created := f.createDebt(t, 2)

	// same event handled twice — full recomputation yields identical buckets
	f.handle(t, created)
	f.handle(t, created)

	daily, err := f.svc.DailyByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, daily.TotalTransactions)
	assert.True(t, decimal.NewFromFloat(6.00).Equal(daily.TotalSales))
}

func TestHandleDebtEvent_StatusChangeMovesAmounts(t *testing.T) {
	f := newReportFixture(t)
	created := f.createDebt(t, 2) // 6.00
	f.handle(t, created)

	id := uuid.MustParse(created.UUID)
	_, err := f.debtFixture.svc.UpdateStatus(context.Background(), id, model.DebtStatusPaid)
	require.NoError(t, err)

	debt, err := f.debts.FindByUUID(context.Background(), id)
	require.NoError(t, err)
	prev := model.DebtStatusActive
	require.NoError(t, f.svc.HandleDebtEvent(context.Background(), event.DebtEvent{
		Name:           event.DebtStatusUpdated,
		Debt:           debt,
		PreviousStatus: &prev,
	}))

	daily, err := f.svc.DailyByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, daily.ActiveDebtsCount)
	assert.Equal(t, 1, daily.PaidDebtsCount)
	assert.True(t, decimal.Zero.Equal(daily.TotalActiveAmount))
	assert.True(t, decimal.NewFromFloat(6.00).Equal(daily.TotalPaidAmount))
	// total sales unchanged — the sale still happened
	assert.True(t, decimal.NewFromFloat(6.00).Equal(daily.TotalSales))
}

func TestHandleDebtEvent_CancellationRemovesFromBuckets(t *testing.T) {
	f := newReportFixture(t)
	created := f.createDebt(t, 2)
	f.handle(t, created)

	id := uuid.MustParse(created.UUID)
	debt, err := f.debts.FindByUUID(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.debtFixture.svc.Cancel(context.Background(), id))

	require.NoError(t, f.svc.HandleDebtEvent(context.Background(), event.DebtEvent{
		Name: event.DebtCancelled,
		Debt: debt,
	}))

	daily, err := f.svc.DailyByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, daily.TotalTransactions)
	assert.True(t, decimal.Zero.Equal(daily.TotalSales))
	assert.True(t, decimal.Zero.Equal(daily.AverageSaleAmount))
}

func TestDailyByDate_NotFound(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.svc.DailyByDate(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func TestMonthly_NotFound(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.svc.Monthly(context.Background(), 2020, 1)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}
