// Package ordercache is the device-local persistence layer of the mobile
// client: a small Badger-backed key/value store holding the cart, the signed
// in user and the orders that have not yet round-tripped through the backend,
// plus the merge that reconciles local orders with backend history.
package ordercache

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
)

// Storage keys, kept compatible with the mobile app's AsyncStorage layout.
const (
	KeyUser              = "@user"
	KeyCart              = "@cart"
	KeyOrders            = "@delivery_app_orders"
	KeySelectedCatererID = "@selectedCatererId"
	KeySearchTracking    = "@search_tracking"
)

type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir. An empty dir opens an in-memory
// store, which the tests use.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// put stores v as JSON under key; last write wins.
func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get loads key into v. A missing key reports found=false and leaves v
// untouched, so callers can fall back to an empty value without treating
// first-run state as a failure.
func (s *Store) get(key string, v any) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveOrders overwrites the locally cached order list. Write failures are
// returned to the caller for explicit user-facing handling.
func (s *Store) SaveOrders(orders []models.Order) error {
	return s.put(KeyOrders, orders)
}

// LoadOrders returns the locally cached orders; an empty store yields nil.
func (s *Store) LoadOrders() ([]models.Order, error) {
	var orders []models.Order
	if _, err := s.get(KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AddOrder appends one order to the local cache, replacing any cached order
// with the same id.
func (s *Store) AddOrder(order models.Order) error {
	orders, err := s.LoadOrders()
	if err != nil {
		return err
	}

	replaced := false
	for i, o := range orders {
		if o.OrderID == order.OrderID {
			orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, order)
	}
	return s.SaveOrders(orders)
}

func (s *Store) ClearOrders() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(KeyOrders))
	})
}

// SaveCart persists the current cart lines.
func (s *Store) SaveCart(items []dto.CartItem) error {
	return s.put(KeyCart, items)
}

func (s *Store) LoadCart() ([]dto.CartItem, error) {
	var items []dto.CartItem
	if _, err := s.get(KeyCart, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Profile is the signed-in user as cached on the device.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *Store) SaveUser(p Profile) error {
	return s.put(KeyUser, p)
}

// LoadUser reports found=false when nobody is signed in.
func (s *Store) LoadUser() (Profile, bool, error) {
	var p Profile
	found, err := s.get(KeyUser, &p)
	if err != nil {
		return Profile{}, false, err
	}
	return p, found, nil
}

func (s *Store) SaveSelectedCaterer(catererID int64) error {
	return s.put(KeySelectedCatererID, catererID)
}

// LoadSelectedCaterer returns 0 when no caterer has been selected yet.
func (s *Store) LoadSelectedCaterer() (int64, error) {
	var id int64
	if _, err := s.get(KeySelectedCatererID, &id); err != nil {
		return 0, err
	}
	return id, nil
}
