package services

import (
	"context"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

func testLogger() logger.Logger {
	l, _ := logger.New("ERROR")
	return l
}

// fakeMenuRepo serves menu items from an in-memory map.
type fakeMenuRepo struct {
	items   map[int64]models.MenuItem
	created []models.MenuItem
}

func (f *fakeMenuRepo) ListByCaterer(ctx context.Context, catererID int64) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, m := range f.items {
		if m.CatererID == catererID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) ListAvailable(ctx context.Context, catererID int64, date string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, m := range f.items {
		if m.CatererID == catererID && m.AvailableOn(date) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	out := make(map[int64]models.MenuItem)
	for _, id := range ids {
		if m, ok := f.items[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) Create(ctx context.Context, m models.MenuItem) (models.MenuItem, error) {
	m.ID = int64(len(f.items) + len(f.created) + 1)
	f.created = append(f.created, m)
	if f.items == nil {
		f.items = make(map[int64]models.MenuItem)
	}
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, id int64, req dto.UpdateMenuRequest) (models.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return models.MenuItem{}, core.ErrMenuItemNotFound
	}
	if req.InStock != nil {
		m.InStock = *req.InStock
	}
	f.items[id] = m
	return m, nil
}

func (f *fakeMenuRepo) SetStock(ctx context.Context, id int64, inStock bool) error {
	m, ok := f.items[id]
	if !ok {
		return core.ErrMenuItemNotFound
	}
	m.InStock = inStock
	f.items[id] = m
	return nil
}

func (f *fakeMenuRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return core.ErrMenuItemNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeOrderRepo records created orders and applies status transitions the
// way the real repo does: validate inside the "transaction", then log.
type fakeOrderRepo struct {
	orders  map[string]models.Order
	created []models.Order
	log     []models.OrderStatusLog
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]models.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if _, ok := f.orders[order.OrderID]; ok {
		return models.Order{}, core.ErrDuplicateOrder
	}
	f.orders[order.OrderID] = order
	f.created = append(f.created, order)
	return order, nil
}

func (f *fakeOrderRepo) ListByCaterer(ctx context.Context, catererID int64, status string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CatererID == catererID && (status == "" || o.Status == status) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID, target, changedBy, note string) (string, models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return "", models.Order{}, core.ErrOrderNotFound
	}
	if !core.CanTransition(o.Status, target) {
		return "", models.Order{}, core.ErrInvalidTransition
	}
	old := o.Status
	o.Status = target
	f.orders[orderID] = o
	f.log = append(f.log, models.OrderStatusLog{Status: target, ChangedBy: changedBy, Note: note})
	return old, o, nil
}

func (f *fakeOrderRepo) StatusLog(ctx context.Context, orderID string) ([]models.OrderStatusLog, error) {
	if _, ok := f.orders[orderID]; !ok {
		return nil, core.ErrOrderNotFound
	}
	return f.log, nil
}

func (f *fakeOrderRepo) Summary(ctx context.Context, catererID int64) (models.OrderSummary, error) {
	summary := models.OrderSummary{CountsByStatus: make(map[string]int)}
	for _, o := range f.orders {
		if o.CatererID != catererID {
			continue
		}
		summary.CountsByStatus[o.Status]++
		if core.IsCommitted(o.Status) {
			summary.TotalRevenue += o.TotalAmount
		}
	}
	return summary, nil
}

// fakeBroker records published status updates.
type fakeBroker struct {
	published []dto.StatusUpdateMessage
	failWith  error
}

func (f *fakeBroker) Close() error { return nil }

func (f *fakeBroker) PublishStatusUpdate(ctx context.Context, msg dto.StatusUpdateMessage) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.published = append(f.published, msg)
	return nil
}

// fakeApartmentRepo enforces the same uniqueness rules as the schema.
type fakeApartmentRepo struct {
	apartments map[int64]models.Apartment
	links      []models.CustomerApartmentLink
	nextID     int64
}

func newFakeApartmentRepo() *fakeApartmentRepo {
	return &fakeApartmentRepo{apartments: make(map[int64]models.Apartment), nextID: 1}
}

func (f *fakeApartmentRepo) List(ctx context.Context, catererID int64) ([]models.Apartment, error) {
	var out []models.Apartment
	for _, a := range f.apartments {
		if a.CatererID == catererID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApartmentRepo) Create(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	for _, existing := range f.apartments {
		if existing.AccessCode == a.AccessCode {
			return models.Apartment{}, core.ErrDuplicateAccessCode
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.apartments[a.ID] = a
	return a, nil
}

func (f *fakeApartmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.apartments[id]; !ok {
		return core.ErrApartmentNotFound
	}
	delete(f.apartments, id)
	kept := f.links[:0]
	for _, l := range f.links {
		if l.ApartmentID != id {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return nil
}

func (f *fakeApartmentRepo) GetByAccessCode(ctx context.Context, accessCode string) (models.Apartment, error) {
	for _, a := range f.apartments {
		if a.AccessCode == accessCode {
			return a, nil
		}
	}
	return models.Apartment{}, core.ErrAccessCodeNotFound
}

func (f *fakeApartmentRepo) GetByID(ctx context.Context, id int64) (models.Apartment, error) {
	a, ok := f.apartments[id]
	if !ok {
		return models.Apartment{}, core.ErrApartmentNotFound
	}
	return a, nil
}

func (f *fakeApartmentRepo) CreateLink(ctx context.Context, link models.CustomerApartmentLink) (models.CustomerApartmentLink, error) {
	for _, l := range f.links {
		if l.CustomerID == link.CustomerID && l.ApartmentID == link.ApartmentID {
			return models.CustomerApartmentLink{}, core.ErrCustomerAlreadyLinked
		}
	}
	link.ID = int64(len(f.links) + 1)
	f.links = append(f.links, link)
	return link, nil
}

func (f *fakeApartmentRepo) CountCustomers(ctx context.Context, catererID int64) ([]models.ApartmentStats, error) {
	var out []models.ApartmentStats
	for _, a := range f.apartments {
		if a.CatererID != catererID {
			continue
		}
		count := 0
		for _, l := range f.links {
			if l.ApartmentID == a.ID {
				count++
			}
		}
		out = append(out, models.ApartmentStats{ApartmentID: a.ID, ApartmentName: a.Name, CustomerCount: count})
	}
	return out, nil
}

// fakeTableRepo assigns ids sequentially.
type fakeTableRepo struct {
	tables map[int64]models.RestaurantTable
	scans  []models.QRScan
	nextID int64
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[int64]models.RestaurantTable), nextID: 1}
}

func (f *fakeTableRepo) List(ctx context.Context, catererID int64) ([]models.RestaurantTable, error) {
	var out []models.RestaurantTable
	for _, t := range f.tables {
		if t.CatererID == catererID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) CreateBulk(ctx context.Context, tables []models.RestaurantTable) ([]models.RestaurantTable, error) {
	created := make([]models.RestaurantTable, 0, len(tables))
	for _, t := range tables {
		t.ID = f.nextID
		f.nextID++
		f.tables[t.ID] = t
		created = append(created, t)
	}
	return created, nil
}

func (f *fakeTableRepo) Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (models.RestaurantTable, error) {
	t, ok := f.tables[id]
	if !ok {
		return models.RestaurantTable{}, core.ErrTableNotFound
	}
	if req.TableNumber != nil {
		t.TableNumber = *req.TableNumber
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	f.tables[id] = t
	return t, nil
}

func (f *fakeTableRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tables[id]; !ok {
		return core.ErrTableNotFound
	}
	delete(f.tables, id)
	return nil
}

func (f *fakeTableRepo) RecordScan(ctx context.Context, tableID int64) (models.QRScan, error) {
	t, ok := f.tables[tableID]
	if !ok {
		return models.QRScan{}, core.ErrTableNotFound
	}
	scan := models.QRScan{ID: int64(len(f.scans) + 1), TableID: tableID, CatererID: t.CatererID}
	f.scans = append(f.scans, scan)
	return scan, nil
}
