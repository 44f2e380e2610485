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

const tableColumns = `
	id, caterer_id, table_number, qr_code_url, qr_data, is_active,
	created_at, updated_at`

type TableRepo struct {
	db core.IDB
}

func NewTableRepo(db core.IDB) *TableRepo {
	return &TableRepo{db: db}
}

func scanTable(row pgx.Row) (models.RestaurantTable, error) {
	var t models.RestaurantTable
	err := row.Scan(
		&t.ID,
		&t.CatererID,
		&t.TableNumber,
		&t.QRCodeURL,
		&t.QRData,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (tr *TableRepo) List(ctx context.Context, catererID int64) ([]models.RestaurantTable, error) {
	q := `SELECT` + tableColumns + `
	FROM restaurant_tables
	WHERE caterer_id = $1
	ORDER BY id`

	rows, err := tr.db.Pool().Query(ctx, q, catererID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []models.RestaurantTable
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// CreateBulk inserts a batch of tables in one transaction; either all rows
// land or none do.
func (tr *TableRepo) CreateBulk(ctx context.Context, tables []models.RestaurantTable) ([]models.RestaurantTable, error) {
	tx, err := tr.db.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]models.RestaurantTable, 0, len(tables))
	for _, t := range tables {
		err := tx.QueryRow(ctx, `
			INSERT INTO restaurant_tables (caterer_id, table_number, qr_code_url, qr_data, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, t.CatererID, t.TableNumber, t.QRCodeURL, t.QRData, t.IsActive).
			Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert table: %w", err)
		}
		created = append(created, t)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (tr *TableRepo) Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (models.RestaurantTable, error) {
	q := `
	UPDATE restaurant_tables SET
		table_number = COALESCE($2, table_number),
		is_active    = COALESCE($3, is_active),
		updated_at   = now()
	WHERE id = $1
	RETURNING` + tableColumns

	t, err := scanTable(tr.db.Pool().QueryRow(ctx, q, id, req.TableNumber, req.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.RestaurantTable{}, core.ErrTableNotFound
		}
		return models.RestaurantTable{}, fmt.Errorf("failed to update table: %w", err)
	}
	return t, nil
}

func (tr *TableRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := tr.db.Pool().Exec(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return core.ErrTableNotFound
	}
	return nil
}

// RecordScan appends a qr_scans row for the table. The caterer id is copied
// from the table so scan counts survive table renames.
func (tr *TableRepo) RecordScan(ctx context.Context, tableID int64) (models.QRScan, error) {
	q := `
	INSERT INTO qr_scans (table_id, caterer_id)
	SELECT id, caterer_id FROM restaurant_tables WHERE id = $1
	RETURNING id, table_id, caterer_id, scanned_at
	`
	var s models.QRScan
	err := tr.db.Pool().QueryRow(ctx, q, tableID).
		Scan(&s.ID, &s.TableID, &s.CatererID, &s.ScannedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.QRScan{}, core.ErrTableNotFound
		}
		return models.QRScan{}, err
	}
	return s, nil
}
