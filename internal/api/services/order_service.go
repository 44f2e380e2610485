package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type OrderService struct {
	orderRepo core.IOrderRepo
	menuRepo  core.IMenuRepo
	broker    core.IBroker
	mylog     logger.Logger
}

func NewOrderService(orderRepo core.IOrderRepo, menuRepo core.IMenuRepo, broker core.IBroker, mylog logger.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		broker:    broker,
		mylog:     mylog,
	}
}

// ValidateCreate checks the checkout request against predefined rules before
// any query runs.
func (s *OrderService) ValidateCreate(req dto.CreateOrderRequest) error {
	if req.CustomerID <= 0 || req.CatererID <= 0 {
		return fmt.Errorf("invalid customer or caterer id: %w", core.ErrFieldIsEmpty)
	}

	itemsLen := len(req.Items)
	if itemsLen == 0 {
		return fmt.Errorf("invalid order items: %w", core.ErrFieldIsEmpty)
	}
	if itemsLen > core.MaxItems {
		return fmt.Errorf("amount of items: %d, must be in range [%d, %d]", itemsLen, core.MinItems, core.MaxItems)
	}
	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return fmt.Errorf("item %d: missing menu item id", i+1)
		}
		if item.Quantity < core.MinItemQuantity || item.Quantity > core.MaxItemQuantity {
			return fmt.Errorf("item %d: quantity: %d, must be in range [%d, %d]",
				i+1, item.Quantity, core.MinItemQuantity, core.MaxItemQuantity)
		}
	}

	if !core.AllowedPaymentMethods[req.PaymentMethod] {
		return fmt.Errorf("undefined payment method: %q", req.PaymentMethod)
	}
	if req.PaymentMethod == core.PaymentUPI && strings.TrimSpace(req.TransactionID) == "" {
		return fmt.Errorf("invalid transaction id: %w", core.ErrFieldIsEmpty)
	}

	if req.DeliveryAddress != nil && len(*req.DeliveryAddress) > core.MaxDeliveryAddressLen {
		return fmt.Errorf("delivery address length: %d, must be at most %d",
			len(*req.DeliveryAddress), core.MaxDeliveryAddressLen)
	}
	if req.DeliveryDate != nil && !core.ValidDate(*req.DeliveryDate) {
		return fmt.Errorf("invalid delivery date: %q", *req.DeliveryDate)
	}

	return nil
}

// Create re-prices the cart from the current menu, builds the immutable item
// snapshot and persists the order with status pending. Client-supplied prices
// are never trusted; if the client claimed a total it must match the
// server-side one.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (models.Order, error) {
	mylog := s.mylog.Action("order_create")

	cart := aggregateCart(req.Items)

	ids := make([]int64, 0, len(cart))
	for _, line := range cart {
		ids = append(ids, line.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		mylog.Error("Failed to load menu items for re-pricing", err)
		return models.Order{}, err
	}

	snapshot := make([]models.OrderItem, 0, len(cart))
	total := 0.0
	for _, line := range cart {
		m, ok := menuItems[line.MenuItemID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: id %d", core.ErrMenuItemNotFound, line.MenuItemID)
		}
		snapshot = append(snapshot, models.OrderItem{
			ID:       m.ID,
			Name:     m.Name,
			Price:    m.Price,
			Quantity: line.Quantity,
			Category: m.Category,
		})
		total += m.Price * float64(line.Quantity)
	}
	total = math.Round(total*100) / 100

	if req.ClaimedTotal != nil && math.Abs(*req.ClaimedTotal-total) > 0.009 {
		mylog.Warn("Client total disagrees with menu prices",
			"claimed", *req.ClaimedTotal, "computed", total)
		return models.Order{}, core.ErrTotalMismatch
	}

	transactionID := req.TransactionID
	if req.PaymentMethod == core.PaymentCOD {
		transactionID = core.CODTransactionID
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = NewOrderID()
	}

	order := models.Order{
		OrderID:         orderID,
		CustomerID:      req.CustomerID,
		CatererID:       req.CatererID,
		Items:           snapshot,
		TotalAmount:     total,
		PaymentMethod:   req.PaymentMethod,
		TransactionID:   transactionID,
		ItemCount:       len(snapshot),
		Status:          core.StatusPending,
		DeliveryDate:    req.DeliveryDate,
		DeliveryAddress: req.DeliveryAddress,
		TableNumber:     req.TableNumber,
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	mylog.Info("Order created", "order_id", created.OrderID, "total_amount", created.TotalAmount)
	return created, nil
}

// UpdateStatus applies a caterer-initiated transition and publishes a status
// update for the notification subscriber. A publish failure does not undo
// the committed transition.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, req dto.UpdateStatusRequest) (models.Order, error) {
	mylog := s.mylog.Action("order_status_update")

	if !core.IsStatus(req.Status) {
		return models.Order{}, fmt.Errorf("undefined status: %q", req.Status)
	}
	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = "caterer"
	}

	oldStatus, order, err := s.orderRepo.UpdateStatus(ctx, orderID, req.Status, changedBy, req.Note)
	if err != nil {
		return models.Order{}, err
	}

	msg := dto.StatusUpdateMessage{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		CatererID:  order.CatererID,
		OldStatus:  oldStatus,
		NewStatus:  order.Status,
		ChangedBy:  changedBy,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.broker.PublishStatusUpdate(ctx, msg); err != nil {
		mylog.Warn("Failed to publish status update", "order_id", order.OrderID, "error", err.Error())
	}

	return order, nil
}

// Cancel is a convenience for advancing to cancelled.
func (s *OrderService) Cancel(ctx context.Context, orderID, changedBy string) (models.Order, error) {
	return s.UpdateStatus(ctx, orderID, dto.UpdateStatusRequest{
		Status:    core.StatusCancelled,
		ChangedBy: changedBy,
		Note:      "order cancelled",
	})
}

func (s *OrderService) ListByCaterer(ctx context.Context, catererID int64, status string) ([]models.Order, error) {
	if status != "" && !core.IsStatus(status) {
		return nil, fmt.Errorf("undefined status: %q", status)
	}
	return s.orderRepo.ListByCaterer(ctx, catererID, status)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

func (s *OrderService) StatusLog(ctx context.Context, orderID string) ([]models.OrderStatusLog, error) {
	return s.orderRepo.StatusLog(ctx, orderID)
}

func (s *OrderService) Summary(ctx context.Context, catererID int64) (models.OrderSummary, error) {
	return s.orderRepo.Summary(ctx, catererID)
}

// aggregateCart merges duplicate cart lines by menu item id, keeping the
// first-seen order of the lines.
func aggregateCart(items []dto.CartItem) []dto.CartItem {
	index := make(map[int64]int, len(items))
	merged := make([]dto.CartItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.MenuItemID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.MenuItemID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// NewOrderID builds a client-style opaque order id: a timestamp prefix plus a
// short random token. Clients normally generate their own before submission;
// this is the server-side fallback.
func NewOrderID() string {
	token := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("ORD_%d_%s", time.Now().UnixMilli(), token)
}
