package ordercache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiffinbox/internal/api/domain/models"
)

func day(n int) time.Time {
	return time.Date(2026, 8, n, 12, 0, 0, 0, time.UTC)
}

func TestMergeBackendWins(t *testing.T) {
	backend := []models.Order{
		{OrderID: "ORD_1", CustomerID: 42, Status: "delivered", OrderDate: day(1)},
	}
	local := []models.Order{
		{OrderID: "ORD_1", CustomerID: 42, Status: "pending", OrderDate: day(1)},
	}

	merged := Merge(backend, local, 42)
	require.Len(t, merged, 1)
	assert.Equal(t, "delivered", merged[0].Status)
}

func TestMergeKeepsLocalOnlyOrders(t *testing.T) {
	backend := []models.Order{
		{OrderID: "ORD_1", CustomerID: 42, OrderDate: day(1)},
	}
	local := []models.Order{
		{OrderID: "ORD_2", CustomerID: 42, OrderDate: day(2)},
	}

	merged := Merge(backend, local, 42)
	assert.Len(t, merged, 2)
}

func TestMergeFiltersOtherCustomers(t *testing.T) {
	local := []models.Order{
		{OrderID: "ORD_1", CustomerID: 42, OrderDate: day(1)},
		{OrderID: "ORD_2", CustomerID: 99, OrderDate: day(2)},
	}

	merged := Merge(nil, local, 42)
	require.Len(t, merged, 1)
	assert.Equal(t, "ORD_1", merged[0].OrderID)
}

func TestMergeSortsNewestFirst(t *testing.T) {
	backend := []models.Order{
		{OrderID: "ORD_1", CustomerID: 42, OrderDate: day(1)},
		{OrderID: "ORD_3", CustomerID: 42, OrderDate: day(3)},
	}
	local := []models.Order{
		{OrderID: "ORD_2", CustomerID: 42, OrderDate: day(2)},
	}

	merged := Merge(backend, local, 42)
	require.Len(t, merged, 3)
	assert.Equal(t, "ORD_3", merged[0].OrderID)
	assert.Equal(t, "ORD_2", merged[1].OrderID)
	assert.Equal(t, "ORD_1", merged[2].OrderID)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, 42))
}
