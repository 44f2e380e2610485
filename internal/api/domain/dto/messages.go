package dto

import "time"

// StatusUpdateMessage is published to the status fanout exchange on every
// order status transition so the notification subscriber can alert customers.
type StatusUpdateMessage struct {
	OrderID    string    `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	CatererID  int64     `json:"caterer_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	Timestamp  time.Time `json:"timestamp"`
}
