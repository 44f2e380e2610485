package models

import "time"

type MenuItem struct {
	ID             int64     `json:"id"`
	CatererID      int64     `json:"catererId"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	Cuisine        string    `json:"cuisine"`
	MealType       string    `json:"mealType"`
	ImageURL       string    `json:"imageUrl"`
	AvailableDates []string  `json:"availableDates"`
	InStock        bool      `json:"inStock"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AvailableOn reports whether the item can be ordered on the given ISO date.
// An item with no available dates is never available.
func (m MenuItem) AvailableOn(date string) bool {
	if !m.InStock {
		return false
	}
	for _, d := range m.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

type Apartment struct {
	ID         int64     `json:"id"`
	CatererID  int64     `json:"catererId"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	AccessCode string    `json:"accessCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CustomerApartmentLink struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ApartmentID int64     `json:"apartmentId"`
	CatererID   int64     `json:"catererId"`
	AddedVia    string    `json:"addedVia"` // "code" or "manual"
	CreatedAt   time.Time `json:"createdAt"`
}

// ApartmentStats is the dashboard aggregation row: how many customers are
// linked to each of a caterer's apartments.
type ApartmentStats struct {
	ApartmentID   int64  `json:"apartmentId"`
	ApartmentName string `json:"apartmentName"`
	CustomerCount int    `json:"customerCount"`
}

type Cuisine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	OrderID         string      `json:"orderId"`
	CustomerID      int64       `json:"customerId"`
	CatererID       int64       `json:"catererId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	PaymentMethod   string      `json:"paymentMethod"`
	TransactionID   string      `json:"transactionId"`
	ItemCount       int         `json:"itemCount"`
	OrderDate       time.Time   `json:"orderDate"`
	Status          string      `json:"status"`
	DeliveryDate    *string     `json:"deliveryDate,omitempty"`
	DeliveryAddress *string     `json:"deliveryAddress,omitempty"`
	TableNumber     *string     `json:"tableNumber,omitempty"`
}

// OrderItem is a snapshot of a menu item at checkout time. It never changes
// after the order is created, even if the menu item is edited or deleted.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

type OrderStatusLog struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Note      string    `json:"note"`
}

// OrderSummary aggregates a caterer's orders for the dashboard. Revenue
// counts only committed statuses.
type OrderSummary struct {
	TotalRevenue   float64        `json:"totalRevenue"`
	CountsByStatus map[string]int `json:"countsByStatus"`
}

type RestaurantTable struct {
	ID          int64     `json:"id"`
	CatererID   int64     `json:"catererId"`
	TableNumber string    `json:"tableNumber"`
	QRCodeURL   string    `json:"qrCodeUrl"`
	QRData      string    `json:"qrData"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableQRPayload is the JSON document embedded in a table's QR code.
type TableQRPayload struct {
	CatererID      int64  `json:"catererId"`
	TableNumber    string `json:"tableNumber"`
	RestaurantName string `json:"restaurantName"`
	Timestamp      string `json:"timestamp"`
}

type QRScan struct {
	ID        int64     `json:"id"`
	TableID   int64     `json:"tableId"`
	CatererID int64     `json:"catererId"`
	ScannedAt time.Time `json:"scannedAt"`
}
