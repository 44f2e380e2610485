package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
)

type IDB interface {
	Close() error
	IsAlive(ctx context.Context) error
	Pool() *pgxpool.Pool
}

type IBroker interface {
	Close() error
	PublishStatusUpdate(ctx context.Context, msg dto.StatusUpdateMessage) error
}

type IApartmentRepo interface {
	List(ctx context.Context, catererID int64) ([]models.Apartment, error)
	Create(ctx context.Context, a models.Apartment) (models.Apartment, error)
	Delete(ctx context.Context, id int64) error
	GetByAccessCode(ctx context.Context, accessCode string) (models.Apartment, error)
	GetByID(ctx context.Context, id int64) (models.Apartment, error)
	CreateLink(ctx context.Context, link models.CustomerApartmentLink) (models.CustomerApartmentLink, error)
	CountCustomers(ctx context.Context, catererID int64) ([]models.ApartmentStats, error)
}

type ICuisineRepo interface {
	List(ctx context.Context) ([]models.Cuisine, error)
	Create(ctx context.Context, name string) (models.Cuisine, error)
}

type IMenuRepo interface {
	ListByCaterer(ctx context.Context, catererID int64) ([]models.MenuItem, error)
	ListAvailable(ctx context.Context, catererID int64, date string) ([]models.MenuItem, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error)
	Create(ctx context.Context, m models.MenuItem) (models.MenuItem, error)
	Update(ctx context.Context, id int64, req dto.UpdateMenuRequest) (models.MenuItem, error)
	SetStock(ctx context.Context, id int64, inStock bool) error
	Delete(ctx context.Context, id int64) error
}

type ITableRepo interface {
	List(ctx context.Context, catererID int64) ([]models.RestaurantTable, error)
	CreateBulk(ctx context.Context, tables []models.RestaurantTable) ([]models.RestaurantTable, error)
	Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (models.RestaurantTable, error)
	Delete(ctx context.Context, id int64) error
	RecordScan(ctx context.Context, tableID int64) (models.QRScan, error)
}

type IOrderRepo interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	ListByCaterer(ctx context.Context, catererID int64, status string) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, target, changedBy, note string) (oldStatus string, order models.Order, err error)
	StatusLog(ctx context.Context, orderID string) ([]models.OrderStatusLog, error)
	Summary(ctx context.Context, catererID int64) (models.OrderSummary, error)
}
