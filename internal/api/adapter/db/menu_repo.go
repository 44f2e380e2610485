package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
)

const menuColumns = `
	id, caterer_id, name, description, price, category, cuisine,
	meal_type, image_url, available_dates, in_stock, created_at`

type MenuRepo struct {
	db core.IDB
}

func NewMenuRepo(db core.IDB) *MenuRepo {
	return &MenuRepo{db: db}
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var m models.MenuItem
	err := row.Scan(
		&m.ID,
		&m.CatererID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.Category,
		&m.Cuisine,
		&m.MealType,
		&m.ImageURL,
		&m.AvailableDates,
		&m.InStock,
		&m.CreatedAt,
	)
	return m, err
}

func (mr *MenuRepo) queryItems(ctx context.Context, q string, args ...any) ([]models.MenuItem, error) {
	rows, err := mr.db.Pool().Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (mr *MenuRepo) ListByCaterer(ctx context.Context, catererID int64) ([]models.MenuItem, error) {
	q := `SELECT` + menuColumns + `
	FROM caterer_menus
	WHERE caterer_id = $1
	ORDER BY created_at DESC`

	return mr.queryItems(ctx, q, catererID)
}

// ListAvailable returns the caterer's items orderable on the given date:
// the date must be in available_dates and the item must be in stock.
func (mr *MenuRepo) ListAvailable(ctx context.Context, catererID int64, date string) ([]models.MenuItem, error) {
	q := `SELECT` + menuColumns + `
	FROM caterer_menus
	WHERE caterer_id = $1
	  AND $2 = ANY(available_dates)
	  AND in_stock
	ORDER BY created_at DESC`

	return mr.queryItems(ctx, q, catererID, date)
}

func (mr *MenuRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	q := `SELECT` + menuColumns + `
	FROM caterer_menus
	WHERE id = ANY($1)`

	items, err := mr.queryItems(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.MenuItem, len(items))
	for _, m := range items {
		byID[m.ID] = m
	}
	return byID, nil
}

func (mr *MenuRepo) Create(ctx context.Context, m models.MenuItem) (models.MenuItem, error) {
	q := `
	INSERT INTO caterer_menus (
		caterer_id, name, description, price, category, cuisine,
		meal_type, image_url, available_dates, in_stock
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at
	`
	err := mr.db.Pool().QueryRow(ctx, q,
		m.CatererID,
		m.Name,
		m.Description,
		m.Price,
		m.Category,
		m.Cuisine,
		m.MealType,
		m.ImageURL,
		m.AvailableDates,
		m.InStock,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}
	return m, nil
}

// Update applies only the fields present in the request; absent fields keep
// their current column value via COALESCE on the nil parameter.
func (mr *MenuRepo) Update(ctx context.Context, id int64, req dto.UpdateMenuRequest) (models.MenuItem, error) {
	q := `
	UPDATE caterer_menus SET
		name            = COALESCE($2, name),
		description     = COALESCE($3, description),
		price           = COALESCE($4, price),
		category        = COALESCE($5, category),
		cuisine         = COALESCE($6, cuisine),
		meal_type       = COALESCE($7, meal_type),
		image_url       = COALESCE($8, image_url),
		available_dates = COALESCE($9, available_dates),
		in_stock        = COALESCE($10, in_stock)
	WHERE id = $1
	RETURNING` + menuColumns

	m, err := scanMenuItem(mr.db.Pool().QueryRow(ctx, q,
		id,
		req.Name,
		req.Description,
		req.Price,
		req.Category,
		req.Cuisine,
		req.MealType,
		req.ImageURL,
		req.AvailableDates,
		req.InStock,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MenuItem{}, core.ErrMenuItemNotFound
		}
		return models.MenuItem{}, fmt.Errorf("failed to update menu item: %w", err)
	}
	return m, nil
}

func (mr *MenuRepo) SetStock(ctx context.Context, id int64, inStock bool) error {
	cmdTag, err := mr.db.Pool().Exec(ctx,
		`UPDATE caterer_menus SET in_stock = $2 WHERE id = $1`, id, inStock)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return core.ErrMenuItemNotFound
	}
	return nil
}

func (mr *MenuRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := mr.db.Pool().Exec(ctx, `DELETE FROM caterer_menus WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return core.ErrMenuItemNotFound
	}
	return nil
}
