package core

import "time"

const WaitTime = 10 // seconds, request-scoped context timeout

type APIParams struct {
	Port int
}

// Validation bounds, applied in the service layer before any query runs.
const (
	MinItems = 1
	MaxItems = 50

	MinItemQuantity = 1
	MaxItemQuantity = 100

	MinNameLen = 1
	MaxNameLen = 100

	MinAccessCodeLen = 4
	MaxAccessCodeLen = 32

	MinBulkTables = 1
	MaxBulkTables = 100

	MaxDeliveryAddressLen = 300
)

// Menu item enums.
var (
	AllowedCategories = map[string]bool{
		"veg":     true,
		"non-veg": true,
	}
	AllowedMealTypes = map[string]bool{
		"breakfast":   true,
		"lunch":       true,
		"dinner":      true,
		"snack":       true,
		"main_course": true,
	}
	AllowedPaymentMethods = map[string]bool{
		"upi": true,
		"cod": true,
	}
)

const (
	PaymentUPI = "upi"
	PaymentCOD = "cod"

	// transaction id recorded for cash-on-delivery orders
	CODTransactionID = "N/A"

	ModeSubscription = "subscription"
	ModeRestaurant   = "restaurant"
)

// IST is the display timezone convention for all date logic.
var IST = time.FixedZone("IST", 5*3600+30*60)

const DateLayout = "2006-01-02"

// TodayIST returns the current calendar date in Indian Standard Time.
func TodayIST() string {
	return time.Now().In(IST).Format(DateLayout)
}

// ValidDate reports whether s is an ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
