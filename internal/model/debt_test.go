package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to DebtStatus
		want     bool
	}{
		{DebtStatusActive, DebtStatusPending, true},
		{DebtStatusActive, DebtStatusPaid, true},
		{DebtStatusActive, DebtStatusSettled, true},
		{DebtStatusPending, DebtStatusPaid, true},
		{DebtStatusPending, DebtStatusSettled, true},
		{DebtStatusPaid, DebtStatusSettled, true},

		// backward
		{DebtStatusPending, DebtStatusActive, false},
		{DebtStatusPaid, DebtStatusActive, false},
		{DebtStatusPaid, DebtStatusPending, false},
		{DebtStatusSettled, DebtStatusActive, false},
		{DebtStatusSettled, DebtStatusPending, false},
		{DebtStatusSettled, DebtStatusPaid, false},

		// self
		{DebtStatusActive, DebtStatusActive, false},
		{DebtStatusPending, DebtStatusPending, false},
		{DebtStatusPaid, DebtStatusPaid, false},
		{DebtStatusSettled, DebtStatusSettled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestDebtStatusValid(t *testing.T) {
	for _, s := range []DebtStatus{DebtStatusActive, DebtStatusPending, DebtStatusPaid, DebtStatusSettled} {
		assert.True(t, s.Valid())
	}
	assert.False(t, DebtStatus("cancelled").Valid())
	assert.False(t, DebtStatus("").Valid())
}

func TestProductTypeValid(t *testing.T) {
	for _, pt := range []ProductType{ProductTypeGranosBasicos, ProductTypeSnacks, ProductTypeBebidas, ProductTypeLacteos} {
		assert.True(t, pt.Valid())
	}
	assert.False(t, ProductType("tabaco").Valid())
}

func TestDebtOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Debt{Status: DebtStatusActive, DueDate: past}).Overdue(now))
	assert.True(t, (&Debt{Status: DebtStatusPending, DueDate: past}).Overdue(now))
	assert.False(t, (&Debt{Status: DebtStatusPaid, DueDate: past}).Overdue(now))
	assert.False(t, (&Debt{Status: DebtStatusSettled, DueDate: past}).Overdue(now))
	assert.False(t, (&Debt{Status: DebtStatusActive, DueDate: future}).Overdue(now))
}

func TestDebtItemSubtotal(t *testing.T) {
	item := DebtItem{Price: decimal.NewFromFloat(2.50), Quantity: 4}
	assert.True(t, decimal.NewFromFloat(10).Equal(item.Subtotal()))
}
