package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
)

func seedMenu() *fakeMenuRepo {
	return &fakeMenuRepo{items: map[int64]models.MenuItem{
		1: {ID: 1, CatererID: 7, Name: "Masala Dosa", Price: 80.50, Category: "veg", InStock: true},
		2: {ID: 2, CatererID: 7, Name: "Chicken Biryani", Price: 220, Category: "non-veg", InStock: true},
	}}
}

func newOrderService(orders *fakeOrderRepo, menu *fakeMenuRepo, broker *fakeBroker) *OrderService {
	return NewOrderService(orders, menu, broker, testLogger())
}

func TestOrderValidateCreate(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	valid := dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 2}},
		PaymentMethod: core.PaymentCOD,
	}
	assert.NoError(t, svc.ValidateCreate(valid))

	tests := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
	}{
		{"missing customer id", func(r *dto.CreateOrderRequest) { r.CustomerID = 0 }},
		{"missing caterer id", func(r *dto.CreateOrderRequest) { r.CatererID = 0 }},
		{"empty items", func(r *dto.CreateOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"quantity over limit", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = core.MaxItemQuantity + 1 }},
		{"unknown payment method", func(r *dto.CreateOrderRequest) { r.PaymentMethod = "card" }},
		{"upi without transaction id", func(r *dto.CreateOrderRequest) { r.PaymentMethod = core.PaymentUPI }},
		{"malformed delivery date", func(r *dto.CreateOrderRequest) {
			d := "28-08-2026"
			r.DeliveryDate = &d
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			req.Items = append([]dto.CartItem(nil), valid.Items...)
			tc.mutate(&req)
			assert.Error(t, svc.ValidateCreate(req))
		})
	}
}

func TestOrderCreateRepricesFromMenu(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newOrderService(orders, seedMenu(), &fakeBroker{})

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 2, Quantity: 1}},
		PaymentMethod: core.PaymentCOD,
	})
	require.NoError(t, err)

	assert.InDelta(t, 381.0, created.TotalAmount, 0.001)
	assert.Equal(t, core.StatusPending, created.Status)
	assert.Equal(t, core.CODTransactionID, created.TransactionID)
	assert.Equal(t, 2, created.ItemCount)
	assert.NotEmpty(t, created.OrderID)

	require.Len(t, created.Items, 2)
	assert.Equal(t, "Masala Dosa", created.Items[0].Name)
	assert.InDelta(t, 80.50, created.Items[0].Price, 0.001)
}

func TestOrderCreateMergesDuplicateCartLines(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 1}, {MenuItemID: 1, Quantity: 2}},
		PaymentMethod: core.PaymentCOD,
	})
	require.NoError(t, err)

	require.Len(t, created.Items, 1)
	assert.Equal(t, 3, created.Items[0].Quantity)
	assert.InDelta(t, 241.50, created.TotalAmount, 0.001)
}

func TestOrderCreateRejectsTotalMismatch(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	claimed := 10.0
	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 2}},
		PaymentMethod: core.PaymentCOD,
		ClaimedTotal:  &claimed,
	})
	assert.ErrorIs(t, err, core.ErrTotalMismatch)
}

func TestOrderCreateAcceptsMatchingClaimedTotal(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	claimed := 161.0
	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 2}},
		PaymentMethod: core.PaymentCOD,
		ClaimedTotal:  &claimed,
	})
	assert.NoError(t, err)
}

func TestOrderCreateUnknownMenuItem(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 999, Quantity: 1}},
		PaymentMethod: core.PaymentCOD,
	})
	assert.ErrorIs(t, err, core.ErrMenuItemNotFound)
}

func TestOrderCreateKeepsClientOrderID(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newOrderService(orders, seedMenu(), &fakeBroker{})

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		OrderID:       "ORD_1756368000000_abc123",
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 1}},
		PaymentMethod: core.PaymentCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD_1756368000000_abc123", created.OrderID)

	_, err = svc.Create(context.Background(), dto.CreateOrderRequest{
		OrderID:       "ORD_1756368000000_abc123",
		CustomerID:    3,
		CatererID:     7,
		Items:         []dto.CartItem{{MenuItemID: 1, Quantity: 1}},
		PaymentMethod: core.PaymentCOD,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateOrder)
}

func TestOrderUpdateStatusPublishes(t *testing.T) {
	orders := newFakeOrderRepo()
	broker := &fakeBroker{}
	svc := newOrderService(orders, seedMenu(), broker)

	orders.orders["ORD_1"] = models.Order{OrderID: "ORD_1", CustomerID: 3, CatererID: 7, Status: core.StatusPending}

	updated, err := svc.UpdateStatus(context.Background(), "ORD_1", dto.UpdateStatusRequest{Status: core.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, core.StatusConfirmed, updated.Status)

	require.Len(t, broker.published, 1)
	msg := broker.published[0]
	assert.Equal(t, "ORD_1", msg.OrderID)
	assert.Equal(t, core.StatusPending, msg.OldStatus)
	assert.Equal(t, core.StatusConfirmed, msg.NewStatus)
	assert.Equal(t, "caterer", msg.ChangedBy)
}

func TestOrderUpdateStatusRejectsIllegalTransition(t *testing.T) {
	orders := newFakeOrderRepo()
	broker := &fakeBroker{}
	svc := newOrderService(orders, seedMenu(), broker)

	orders.orders["ORD_1"] = models.Order{OrderID: "ORD_1", Status: core.StatusPending}

	_, err := svc.UpdateStatus(context.Background(), "ORD_1", dto.UpdateStatusRequest{Status: core.StatusDelivered})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
	assert.Empty(t, broker.published)
}

func TestOrderUpdateStatusSurvivesPublishFailure(t *testing.T) {
	orders := newFakeOrderRepo()
	broker := &fakeBroker{failWith: core.ErrMBConn}
	svc := newOrderService(orders, seedMenu(), broker)

	orders.orders["ORD_1"] = models.Order{OrderID: "ORD_1", Status: core.StatusPending}

	updated, err := svc.UpdateStatus(context.Background(), "ORD_1", dto.UpdateStatusRequest{Status: core.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, core.StatusConfirmed, updated.Status)
}

func TestOrderCancel(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newOrderService(orders, seedMenu(), &fakeBroker{})

	orders.orders["ORD_1"] = models.Order{OrderID: "ORD_1", Status: core.StatusPreparing}

	cancelled, err := svc.Cancel(context.Background(), "ORD_1", "customer")
	require.NoError(t, err)
	assert.Equal(t, core.StatusCancelled, cancelled.Status)
}

func TestOrderListByCatererRejectsUnknownStatus(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), seedMenu(), &fakeBroker{})

	_, err := svc.ListByCaterer(context.Background(), 7, "shipped")
	assert.Error(t, err)
}

func TestOrderSummaryCountsCommittedRevenue(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := newOrderService(orders, seedMenu(), &fakeBroker{})

	orders.orders["ORD_1"] = models.Order{OrderID: "ORD_1", CatererID: 7, Status: core.StatusDelivered, TotalAmount: 100}
	orders.orders["ORD_2"] = models.Order{OrderID: "ORD_2", CatererID: 7, Status: core.StatusPending, TotalAmount: 50}
	orders.orders["ORD_3"] = models.Order{OrderID: "ORD_3", CatererID: 7, Status: core.StatusCancelled, TotalAmount: 75}

	summary, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.TotalRevenue, 0.001)
	assert.Equal(t, 1, summary.CountsByStatus[core.StatusPending])
	assert.Equal(t, 1, summary.CountsByStatus[core.StatusCancelled])
}

func TestNewOrderIDShape(t *testing.T) {
	id := NewOrderID()
	assert.Regexp(t, `^ORD_\d+_[0-9a-f]{8}$`, id)
}
