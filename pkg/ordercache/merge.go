package ordercache

import (
	"sort"

	"tiffinbox/internal/api/domain/models"
)

// Merge reconciles backend order history with the locally cached copy for
// one customer. Backend records are authoritative: when both sides hold the
// same order id, the backend version wins. Local-only orders (typically ones
// that have not round-tripped yet) fill the gaps. The result is sorted by
// order date descending.
func Merge(backend, local []models.Order, customerID int64) []models.Order {
	merged := make(map[string]models.Order, len(backend)+len(local))

	for _, o := range backend {
		merged[o.OrderID] = o
	}
	for _, o := range local {
		if o.CustomerID != customerID {
			continue
		}
		if _, ok := merged[o.OrderID]; !ok {
			merged[o.OrderID] = o
		}
	}

	orders := make([]models.Order, 0, len(merged))
	for _, o := range merged {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}
