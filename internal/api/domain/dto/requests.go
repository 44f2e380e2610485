package dto

// Request bodies are camelCase on the wire; the adapter layer owns the
// translation to snake_case columns.

type CreateApartmentRequest struct {
	CatererID  int64  `json:"catererId"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	AccessCode string `json:"accessCode"`
}

type LinkByCodeRequest struct {
	CustomerID int64  `json:"customerId"`
	AccessCode string `json:"accessCode"`
}

type LinkManualRequest struct {
	CatererID  int64 `json:"catererId"`
	CustomerID int64 `json:"customerId"`
}

type CreateCuisineRequest struct {
	Name string `json:"name"`
}

type CreateMenuRequest struct {
	CatererID      int64    `json:"catererId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Cuisine        string   `json:"cuisine"`
	MealType       string   `json:"mealType"`
	ImageURL       string   `json:"imageUrl"`
	AvailableDates []string `json:"availableDates"`
	InStock        *bool    `json:"inStock"`
	// "subscription" (default) requires at least one available date;
	// "restaurant" items are seeded with today when no dates are given.
	Mode string `json:"mode"`
}

type UpdateMenuRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Price          *float64  `json:"price"`
	Category       *string   `json:"category"`
	Cuisine        *string   `json:"cuisine"`
	MealType       *string   `json:"mealType"`
	ImageURL       *string   `json:"imageUrl"`
	AvailableDates *[]string `json:"availableDates"`
	InStock        *bool     `json:"inStock"`
}

type StockRequest struct {
	InStock bool `json:"inStock"`
}

type BulkTablesRequest struct {
	CatererID      int64  `json:"catererId"`
	RestaurantName string `json:"restaurantName"`
	Count          int    `json:"count"`
	StartNumber    int    `json:"startNumber"`
}

type UpdateTableRequest struct {
	TableNumber *string `json:"tableNumber"`
	IsActive    *bool   `json:"isActive"`
}

type CartItem struct {
	MenuItemID int64 `json:"id"`
	Quantity   int   `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderID         string     `json:"orderId"`
	CustomerID      int64      `json:"customerId"`
	CatererID       int64      `json:"catererId"`
	Items           []CartItem `json:"items"`
	PaymentMethod   string     `json:"paymentMethod"`
	TransactionID   string     `json:"transactionId"`
	DeliveryDate    *string    `json:"deliveryDate"`
	DeliveryAddress *string    `json:"deliveryAddress"`
	TableNumber     *string    `json:"tableNumber"`
	// ClaimedTotal is the total the client computed from its cart snapshot.
	// The server re-prices from the menu and rejects a mismatch.
	ClaimedTotal *float64 `json:"totalAmount"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	Note      string `json:"note"`
}
