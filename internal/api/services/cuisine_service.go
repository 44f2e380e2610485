package services

import (
	"context"
	"fmt"
	"strings"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type CuisineService struct {
	cuisineRepo core.ICuisineRepo
	mylog       logger.Logger
}

func NewCuisineService(cuisineRepo core.ICuisineRepo, mylog logger.Logger) *CuisineService {
	return &CuisineService{cuisineRepo: cuisineRepo, mylog: mylog}
}

func (s *CuisineService) List(ctx context.Context) ([]models.Cuisine, error) {
	return s.cuisineRepo.List(ctx)
}

func (s *CuisineService) Create(ctx context.Context, name string) (models.Cuisine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Cuisine{}, fmt.Errorf("invalid name: %w", core.ErrFieldIsEmpty)
	}
	return s.cuisineRepo.Create(ctx, name)
}
