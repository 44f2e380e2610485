package core

// Order statuses. A caterer advances an order one step at a time through the
// linear sequence; cancelled is reachable from any non-terminal status.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

var nextStatus = map[string]string{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// committed statuses count toward revenue totals; pending and cancelled do not.
var committedStatuses = map[string]bool{
	StatusConfirmed:      true,
	StatusPreparing:      true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
}

// NextStatus returns the single legal next status in the linear sequence.
// ok is false for terminal statuses and unknown input.
func NextStatus(status string) (string, bool) {
	next, ok := nextStatus[status]
	return next, ok
}

func IsStatus(status string) bool {
	if status == StatusDelivered || status == StatusCancelled {
		return true
	}
	_, ok := nextStatus[status]
	return ok
}

func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

func IsCommitted(status string) bool {
	return committedStatuses[status]
}

// CanTransition reports whether from → to is a legal move: either the single
// next step of the sequence, or a cancellation of a non-terminal order.
func CanTransition(from, to string) bool {
	if to == StatusCancelled {
		return !IsTerminal(from) && IsStatus(from)
	}
	next, ok := nextStatus[from]
	return ok && next == to
}
