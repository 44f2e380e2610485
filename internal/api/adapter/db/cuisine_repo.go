package db

import (
	"context"
	"fmt"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/models"
)

type CuisineRepo struct {
	db core.IDB
}

func NewCuisineRepo(db core.IDB) *CuisineRepo {
	return &CuisineRepo{db: db}
}

func (cr *CuisineRepo) List(ctx context.Context) ([]models.Cuisine, error) {
	q := `SELECT id, name, created_at FROM cuisines ORDER BY name`

	rows, err := cr.db.Pool().Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cuisines []models.Cuisine
	for rows.Next() {
		var c models.Cuisine
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cuisines = append(cuisines, c)
	}
	return cuisines, rows.Err()
}

func (cr *CuisineRepo) Create(ctx context.Context, name string) (models.Cuisine, error) {
	q := `INSERT INTO cuisines (name) VALUES ($1) RETURNING id, created_at`

	c := models.Cuisine{Name: name}
	if err := cr.db.Pool().QueryRow(ctx, q, name).Scan(&c.ID, &c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return models.Cuisine{}, core.ErrDuplicateCuisine
		}
		return models.Cuisine{}, fmt.Errorf("failed to insert cuisine: %w", err)
	}
	return c, nil
}
