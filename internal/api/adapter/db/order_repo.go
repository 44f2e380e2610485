package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type OrderRepo struct {
	db    core.IDB
	mylog logger.Logger
}

func NewOrderRepo(db core.IDB, mylog logger.Logger) *OrderRepo {
	return &OrderRepo{db: db, mylog: mylog}
}

// Create inserts the order, its immutable item snapshot and the initial
// status log entry in one transaction. A duplicate order_id hits the unique
// index and maps to ErrDuplicateOrder, which makes client retries idempotent.
func (or *OrderRepo) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if err := or.db.IsAlive(ctx); err != nil {
		return models.Order{}, core.ErrDBConn
	}

	tx, err := or.db.Pool().Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			order_id,
			customer_id,
			caterer_id,
			total_amount,
			payment_method,
			transaction_id,
			item_count,
			status,
			delivery_date,
			delivery_address,
			table_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING order_date
	`,
		order.OrderID,
		order.CustomerID,
		order.CatererID,
		order.TotalAmount,
		order.PaymentMethod,
		order.TransactionID,
		order.ItemCount,
		order.Status,
		order.DeliveryDate,
		order.DeliveryAddress,
		order.TableNumber,
	).Scan(&order.OrderDate)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Order{}, core.ErrDuplicateOrder
		}
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, price, quantity, category)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.OrderID, item.ID, item.Name, item.Price, item.Quantity, item.Category)
		if err != nil {
			return models.Order{}, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, note)
		VALUES ($1, $2, $3, $4)
	`, order.OrderID, order.Status, "customer", "order placed")
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

const orderColumns = `
	order_id, customer_id, caterer_id, total_amount, payment_method,
	transaction_id, item_count, order_date, status, delivery_date,
	delivery_address, table_number`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.OrderID,
		&o.CustomerID,
		&o.CatererID,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.TransactionID,
		&o.ItemCount,
		&o.OrderDate,
		&o.Status,
		&o.DeliveryDate,
		&o.DeliveryAddress,
		&o.TableNumber,
	)
	return o, err
}

func (or *OrderRepo) ListByCaterer(ctx context.Context, catererID int64, status string) ([]models.Order, error) {
	q := `SELECT` + orderColumns + `
	FROM orders
	WHERE caterer_id = $1 AND ($2 = '' OR status = $2)
	ORDER BY order_date DESC`

	return or.queryOrders(ctx, q, catererID, status)
}

func (or *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	q := `SELECT` + orderColumns + `
	FROM orders
	WHERE customer_id = $1
	ORDER BY order_date DESC`

	return or.queryOrders(ctx, q, customerID)
}

func (or *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Pool().Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return or.attachItems(ctx, orders)
}

// attachItems loads the item snapshots for a page of orders in one query.
func (or *OrderRepo) attachItems(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.OrderID)
		index[o.OrderID] = i
	}

	rows, err := or.db.Pool().Query(ctx, `
		SELECT order_id, menu_item_id, name, price, quantity, category
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item models.OrderItem
		if err := rows.Scan(&orderID, &item.ID, &item.Name, &item.Price, &item.Quantity, &item.Category); err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, rows.Err()
}

// UpdateStatus moves an order to target if that transition is legal. The row
// is locked for the duration of the transaction so a concurrent transition
// cannot slip between the validation and the update.
func (or *OrderRepo) UpdateStatus(ctx context.Context, orderID, target, changedBy, note string) (string, models.Order, error) {
	mylog := or.mylog.Action("order_status_update")

	tx, err := or.db.Pool().Begin(ctx)
	if err != nil {
		return "", models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx,
		`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.Order{}, core.ErrOrderNotFound
		}
		return "", models.Order{}, err
	}

	if !core.CanTransition(current, target) {
		mylog.Warn("Rejected status transition", "order_id", orderID, "from", current, "to", target)
		return "", models.Order{}, core.ErrInvalidTransition
	}

	order, err := scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET status = $2 WHERE order_id = $1
		RETURNING`+orderColumns,
		orderID, target))
	if err != nil {
		return "", models.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, note)
		VALUES ($1, $2, $3, $4)
	`, orderID, target, changedBy, note)
	if err != nil {
		return "", models.Order{}, fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	mylog.Debug("Status updated", "order_id", orderID, "from", current, "to", target)
	return current, order, nil
}

func (or *OrderRepo) StatusLog(ctx context.Context, orderID string) ([]models.OrderStatusLog, error) {
	rows, err := or.db.Pool().Query(ctx, `
		SELECT osl.status, osl.changed_by, osl.changed_at, osl.note
		FROM order_status_log osl
		JOIN orders o ON o.order_id = osl.order_id
		WHERE o.order_id = $1
		ORDER BY osl.changed_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []models.OrderStatusLog
	for rows.Next() {
		var entry models.OrderStatusLog
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Note); err != nil {
			return nil, err
		}
		log = append(log, entry)
	}
	if len(log) == 0 {
		return nil, core.ErrOrderNotFound
	}
	return log, rows.Err()
}

// Summary aggregates per-status counts and committed revenue for a caterer.
func (or *OrderRepo) Summary(ctx context.Context, catererID int64) (models.OrderSummary, error) {
	rows, err := or.db.Pool().Query(ctx, `
		SELECT status, COUNT(*), SUM(total_amount)
		FROM orders
		WHERE caterer_id = $1
		GROUP BY status
	`, catererID)
	if err != nil {
		return models.OrderSummary{}, err
	}
	defer rows.Close()

	summary := models.OrderSummary{CountsByStatus: make(map[string]int)}
	for rows.Next() {
		var status string
		var count int
		var amount float64
		if err := rows.Scan(&status, &count, &amount); err != nil {
			return models.OrderSummary{}, err
		}
		summary.CountsByStatus[status] = count
		if core.IsCommitted(status) {
			summary.TotalRevenue += amount
		}
	}
	return summary, rows.Err()
}
