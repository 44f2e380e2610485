package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type ApartmentRepo struct {
	db    core.IDB
	mylog logger.Logger
}

func NewApartmentRepo(db core.IDB, mylog logger.Logger) *ApartmentRepo {
	return &ApartmentRepo{db: db, mylog: mylog}
}

func (ar *ApartmentRepo) List(ctx context.Context, catererID int64) ([]models.Apartment, error) {
	q := `
	SELECT
		id, caterer_id, name, address, access_code, created_at
	FROM
		apartments
	WHERE
		caterer_id = $1
	ORDER BY created_at DESC
	`
	rows, err := ar.db.Pool().Query(ctx, q, catererID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []models.Apartment
	for rows.Next() {
		var a models.Apartment
		if err := rows.Scan(&a.ID, &a.CatererID, &a.Name, &a.Address, &a.AccessCode, &a.CreatedAt); err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	return apartments, rows.Err()
}

func (ar *ApartmentRepo) Create(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	q := `
	INSERT INTO apartments (caterer_id, name, address, access_code)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`
	err := ar.db.Pool().QueryRow(ctx, q, a.CatererID, a.Name, a.Address, a.AccessCode).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Apartment{}, core.ErrDuplicateAccessCode
		}
		return models.Apartment{}, fmt.Errorf("failed to insert apartment: %w", err)
	}
	return a, nil
}

// Delete removes the apartment and all customer links that reference it in
// a single transaction.
func (ar *ApartmentRepo) Delete(ctx context.Context, id int64) error {
	mylog := ar.mylog.Action("apartment_delete")

	tx, err := ar.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customer_apartment_links WHERE apartment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete apartment links: %w", err)
	}
	mylog.Debug("Cascaded apartment links", "apartment_id", id, "links_removed", cmdTag.RowsAffected())

	cmdTag, err = tx.Exec(ctx, `DELETE FROM apartments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete apartment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return core.ErrApartmentNotFound
	}

	return tx.Commit(ctx)
}

func (ar *ApartmentRepo) GetByAccessCode(ctx context.Context, accessCode string) (models.Apartment, error) {
	q := `
	SELECT
		id, caterer_id, name, address, access_code, created_at
	FROM
		apartments
	WHERE
		access_code = $1
	`
	var a models.Apartment
	err := ar.db.Pool().QueryRow(ctx, q, accessCode).
		Scan(&a.ID, &a.CatererID, &a.Name, &a.Address, &a.AccessCode, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Apartment{}, core.ErrAccessCodeNotFound
		}
		return models.Apartment{}, err
	}
	return a, nil
}

func (ar *ApartmentRepo) GetByID(ctx context.Context, id int64) (models.Apartment, error) {
	q := `
	SELECT
		id, caterer_id, name, address, access_code, created_at
	FROM
		apartments
	WHERE
		id = $1
	`
	var a models.Apartment
	err := ar.db.Pool().QueryRow(ctx, q, id).
		Scan(&a.ID, &a.CatererID, &a.Name, &a.Address, &a.AccessCode, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Apartment{}, core.ErrApartmentNotFound
		}
		return models.Apartment{}, err
	}
	return a, nil
}

// CreateLink inserts a customer-apartment link. The (customer_id,
// apartment_id) unique index makes the duplicate check atomic.
func (ar *ApartmentRepo) CreateLink(ctx context.Context, link models.CustomerApartmentLink) (models.CustomerApartmentLink, error) {
	q := `
	INSERT INTO customer_apartment_links (customer_id, apartment_id, caterer_id, added_via)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`
	err := ar.db.Pool().QueryRow(ctx, q, link.CustomerID, link.ApartmentID, link.CatererID, link.AddedVia).
		Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CustomerApartmentLink{}, core.ErrCustomerAlreadyLinked
		}
		return models.CustomerApartmentLink{}, fmt.Errorf("failed to insert link: %w", err)
	}
	return link, nil
}

func (ar *ApartmentRepo) CountCustomers(ctx context.Context, catererID int64) ([]models.ApartmentStats, error) {
	q := `
	SELECT
		a.id,
		a.name,
		COUNT(l.id)
	FROM
		apartments a
	LEFT JOIN customer_apartment_links l ON l.apartment_id = a.id
	WHERE
		a.caterer_id = $1
	GROUP BY a.id, a.name
	ORDER BY a.name
	`
	rows, err := ar.db.Pool().Query(ctx, q, catererID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.ApartmentStats
	for rows.Next() {
		var s models.ApartmentStats
		if err := rows.Scan(&s.ApartmentID, &s.ApartmentName, &s.CustomerCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
