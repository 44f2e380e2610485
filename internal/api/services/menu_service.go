package services

import (
	"context"
	"fmt"
	"strings"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type MenuService struct {
	menuRepo core.IMenuRepo
	mylog    logger.Logger
}

func NewMenuService(menuRepo core.IMenuRepo, mylog logger.Logger) *MenuService {
	return &MenuService{menuRepo: menuRepo, mylog: mylog}
}

func (s *MenuService) ValidateCreate(req dto.CreateMenuRequest) error {
	if req.CatererID <= 0 {
		return fmt.Errorf("invalid caterer id: %w", core.ErrFieldIsEmpty)
	}

	nameLen := len(strings.TrimSpace(req.Name))
	if nameLen < core.MinNameLen || nameLen > core.MaxNameLen {
		return fmt.Errorf("name length: %d, must be in range [%d, %d]", nameLen, core.MinNameLen, core.MaxNameLen)
	}
	if req.Price <= 0 {
		return fmt.Errorf("price must be positive: %f", req.Price)
	}
	if !core.AllowedCategories[req.Category] {
		return fmt.Errorf("undefined category: %q", req.Category)
	}
	if !core.AllowedMealTypes[req.MealType] {
		return fmt.Errorf("undefined meal type: %q", req.MealType)
	}

	for _, d := range req.AvailableDates {
		if !core.ValidDate(d) {
			return fmt.Errorf("invalid available date: %q", d)
		}
	}

	// Home-catering items must carry at least one orderable date;
	// restaurant items are seeded with today at creation instead.
	if req.Mode != core.ModeRestaurant && len(req.AvailableDates) == 0 {
		return fmt.Errorf("available dates: %w", core.ErrFieldIsEmpty)
	}

	return nil
}

func (s *MenuService) Create(ctx context.Context, req dto.CreateMenuRequest) (models.MenuItem, error) {
	mylog := s.mylog.Action("menu_create")

	dates := req.AvailableDates
	if req.Mode == core.ModeRestaurant && len(dates) == 0 {
		dates = []string{core.TodayIST()}
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	item := models.MenuItem{
		CatererID:      req.CatererID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Cuisine:        req.Cuisine,
		MealType:       req.MealType,
		ImageURL:       req.ImageURL,
		AvailableDates: dates,
		InStock:        inStock,
	}

	created, err := s.menuRepo.Create(ctx, item)
	if err != nil {
		mylog.Error("Failed to create menu item", err)
		return models.MenuItem{}, err
	}

	mylog.Info("Menu item created", "id", created.ID, "caterer_id", created.CatererID)
	return created, nil
}

func (s *MenuService) Update(ctx context.Context, id int64, req dto.UpdateMenuRequest) (models.MenuItem, error) {
	if req.Price != nil && *req.Price <= 0 {
		return models.MenuItem{}, fmt.Errorf("price must be positive: %f", *req.Price)
	}
	if req.Category != nil && !core.AllowedCategories[*req.Category] {
		return models.MenuItem{}, fmt.Errorf("undefined category: %q", *req.Category)
	}
	if req.MealType != nil && !core.AllowedMealTypes[*req.MealType] {
		return models.MenuItem{}, fmt.Errorf("undefined meal type: %q", *req.MealType)
	}
	if req.AvailableDates != nil {
		for _, d := range *req.AvailableDates {
			if !core.ValidDate(d) {
				return models.MenuItem{}, fmt.Errorf("invalid available date: %q", d)
			}
		}
	}
	return s.menuRepo.Update(ctx, id, req)
}

func (s *MenuService) SetStock(ctx context.Context, id int64, inStock bool) error {
	return s.menuRepo.SetStock(ctx, id, inStock)
}

func (s *MenuService) Delete(ctx context.Context, id int64) error {
	return s.menuRepo.Delete(ctx, id)
}

func (s *MenuService) ListByCaterer(ctx context.Context, catererID int64) ([]models.MenuItem, error) {
	return s.menuRepo.ListByCaterer(ctx, catererID)
}

// ListAvailable returns the items orderable on the given date; an empty date
// means today in IST.
func (s *MenuService) ListAvailable(ctx context.Context, catererID int64, date string) ([]models.MenuItem, error) {
	if date == "" {
		date = core.TodayIST()
	}
	if !core.ValidDate(date) {
		return nil, fmt.Errorf("invalid date: %q", date)
	}
	return s.menuRepo.ListAvailable(ctx, catererID, date)
}
