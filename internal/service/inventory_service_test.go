package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
)

func TestReserve_DecrementsStock(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 15)

	p, err := svc.Reserve(context.Background(), nil, rice.UUID, 6)
	require.NoError(t, err)
	assert.Equal(t, 9, p.Stock)

	stored, _ := products.FindByUUID(context.Background(), rice.UUID)
	assert.Equal(t, 9, stored.Stock)
}

func TestReserve_ExactStockAllowed(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 5)

	p, err := svc.Reserve(context.Background(), nil, rice.UUID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 2)

	_, err := svc.Reserve(context.Background(), nil, rice.UUID, 3)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInsufficientStock))

	// stock untouched on failure
	stored, _ := products.FindByUUID(context.Background(), rice.UUID)
	assert.Equal(t, 2, stored.Stock)
}

func TestReserve_UnknownProduct(t *testing.T) {
	svc := NewInventoryService(newStubProductRepo())
	_, err := svc.Reserve(context.Background(), nil, uuid.New(), 1)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func TestReserve_NonPositiveQuantity(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 10)

	for _, qty := range []int{0, -1} {
		_, err := svc.Reserve(context.Background(), nil, rice.UUID, qty)
		require.Error(t, err)
		assert.True(t, apierror.Is(err, apierror.KindInvalidArgument))
	}
}

func TestRelease_IncrementsStock(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 4)

	p, err := svc.Release(context.Background(), nil, rice.UUID, 6)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestRelease_NonPositiveQuantity(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 4)

	_, err := svc.Release(context.Background(), nil, rice.UUID, 0)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInvalidArgument))
}

func TestHasStock(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	rice := products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 3)

	ok, err := svc.HasStock(context.Background(), rice.UUID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasStock(context.Background(), rice.UUID, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLowStock(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products)
	products.add("Arroz 1kg", decimal.NewFromFloat(2.50), 50)
	low := products.add("Leche 1L", decimal.NewFromFloat(1.25), 3)

	out, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, low.UUID, out[0].UUID)
}
