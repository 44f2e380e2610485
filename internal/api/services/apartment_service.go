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

const (
	addedViaCode   = "code"
	addedViaManual = "manual"
)

type ApartmentService struct {
	apartmentRepo core.IApartmentRepo
	mylog         logger.Logger
}

func NewApartmentService(apartmentRepo core.IApartmentRepo, mylog logger.Logger) *ApartmentService {
	return &ApartmentService{apartmentRepo: apartmentRepo, mylog: mylog}
}

func (s *ApartmentService) ValidateCreate(req dto.CreateApartmentRequest) error {
	if req.CatererID <= 0 {
		return fmt.Errorf("invalid caterer id: %w", core.ErrFieldIsEmpty)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("invalid name: %w", core.ErrFieldIsEmpty)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("invalid address: %w", core.ErrFieldIsEmpty)
	}

	codeLen := len(req.AccessCode)
	if codeLen < core.MinAccessCodeLen || codeLen > core.MaxAccessCodeLen {
		return fmt.Errorf("access code length: %d, must be in range [%d, %d]",
			codeLen, core.MinAccessCodeLen, core.MaxAccessCodeLen)
	}
	return nil
}

func (s *ApartmentService) Create(ctx context.Context, req dto.CreateApartmentRequest) (models.Apartment, error) {
	mylog := s.mylog.Action("apartment_create")

	created, err := s.apartmentRepo.Create(ctx, models.Apartment{
		CatererID:  req.CatererID,
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		AccessCode: req.AccessCode,
	})
	if err != nil {
		return models.Apartment{}, err
	}

	mylog.Info("Apartment created", "id", created.ID, "caterer_id", created.CatererID)
	return created, nil
}

func (s *ApartmentService) List(ctx context.Context, catererID int64) ([]models.Apartment, error) {
	return s.apartmentRepo.List(ctx, catererID)
}

func (s *ApartmentService) Delete(ctx context.Context, id int64) error {
	return s.apartmentRepo.Delete(ctx, id)
}

// LinkByCode redeems a caterer-issued access code for the customer. A second
// redemption of the same code by the same customer is a conflict, not a
// silent merge.
func (s *ApartmentService) LinkByCode(ctx context.Context, customerID int64, accessCode string) (models.CustomerApartmentLink, error) {
	mylog := s.mylog.Action("apartment_link_by_code")

	if customerID <= 0 {
		return models.CustomerApartmentLink{}, fmt.Errorf("invalid customer id: %w", core.ErrFieldIsEmpty)
	}
	if strings.TrimSpace(accessCode) == "" {
		return models.CustomerApartmentLink{}, fmt.Errorf("invalid access code: %w", core.ErrFieldIsEmpty)
	}

	apartment, err := s.apartmentRepo.GetByAccessCode(ctx, accessCode)
	if err != nil {
		return models.CustomerApartmentLink{}, err
	}

	link, err := s.apartmentRepo.CreateLink(ctx, models.CustomerApartmentLink{
		CustomerID:  customerID,
		ApartmentID: apartment.ID,
		CatererID:   apartment.CatererID,
		AddedVia:    addedViaCode,
	})
	if err != nil {
		return models.CustomerApartmentLink{}, err
	}

	mylog.Info("Customer linked via access code",
		"customer_id", customerID, "apartment_id", apartment.ID)
	return link, nil
}

// LinkManually is the caterer-initiated equivalent of LinkByCode.
func (s *ApartmentService) LinkManually(ctx context.Context, catererID, customerID, apartmentID int64) (models.CustomerApartmentLink, error) {
	mylog := s.mylog.Action("apartment_link_manual")

	if customerID <= 0 || catererID <= 0 {
		return models.CustomerApartmentLink{}, fmt.Errorf("invalid customer or caterer id: %w", core.ErrFieldIsEmpty)
	}

	apartment, err := s.apartmentRepo.GetByID(ctx, apartmentID)
	if err != nil {
		return models.CustomerApartmentLink{}, err
	}
	if apartment.CatererID != catererID {
		return models.CustomerApartmentLink{}, core.ErrApartmentNotFound
	}

	link, err := s.apartmentRepo.CreateLink(ctx, models.CustomerApartmentLink{
		CustomerID:  customerID,
		ApartmentID: apartment.ID,
		CatererID:   catererID,
		AddedVia:    addedViaManual,
	})
	if err != nil {
		return models.CustomerApartmentLink{}, err
	}

	mylog.Info("Customer linked manually",
		"customer_id", customerID, "apartment_id", apartment.ID)
	return link, nil
}

func (s *ApartmentService) Stats(ctx context.Context, catererID int64) ([]models.ApartmentStats, error) {
	return s.apartmentRepo.CountCustomers(ctx, catererID)
}
