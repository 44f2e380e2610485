package core

import "errors"

var (
	ErrDBConn = errors.New("db connection failure")
	ErrMBConn = errors.New("message broker connection failure")

	ErrFieldIsEmpty = errors.New("field is empty")

	// apartments and linking
	ErrApartmentNotFound     = errors.New("apartment not found")
	ErrAccessCodeNotFound    = errors.New("no apartment matches this access code")
	ErrDuplicateAccessCode   = errors.New("access code already in use")
	ErrCustomerAlreadyLinked = errors.New("customer already linked to this apartment")

	// cuisines
	ErrDuplicateCuisine = errors.New("cuisine already exists")

	// menus
	ErrMenuItemNotFound = errors.New("menu item not found")

	// tables
	ErrTableNotFound = errors.New("table not found")

	// orders
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateOrder    = errors.New("order with this id already exists")
	ErrTotalMismatch     = errors.New("submitted total does not match current menu prices")
	ErrInvalidTransition = errors.New("illegal order status transition")
)
