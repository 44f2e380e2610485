package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/services"
	"tiffinbox/internal/xpkg/logger"
)

type ApartmentHandler struct {
	apartmentService *services.ApartmentService
	mylog            logger.Logger
}

func NewApartmentHandler(apartmentService *services.ApartmentService, mylog logger.Logger) *ApartmentHandler {
	return &ApartmentHandler{
		apartmentService: apartmentService,
		mylog:            mylog,
	}
}

func (ah *ApartmentHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		apartments, err := ah.apartmentService.List(ctx, catererID)
		if err != nil {
			ah.mylog.Action("apartment_list_failed").Error("Failed to list apartments", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to list apartments"))
			return
		}

		jsonResponse(w, http.StatusOK, apartments)
	}
}

func (ah *ApartmentHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateApartmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ah.mylog.Action("parse_failed").Error("Failed to parse apartment", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := ah.apartmentService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		apartment, err := ah.apartmentService.Create(ctx, req)
		if err != nil {
			if errors.Is(err, core.ErrDuplicateAccessCode) {
				jsonError(w, http.StatusConflict, err)
				return
			}
			ah.mylog.Action("apartment_create_failed").Error("Failed to create apartment", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to create apartment"))
			return
		}

		jsonResponse(w, http.StatusCreated, apartment)
	}
}

func (ah *ApartmentHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := ah.apartmentService.Delete(ctx, id); err != nil {
			if errors.Is(err, core.ErrApartmentNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			ah.mylog.Action("apartment_delete_failed").Error("Failed to delete apartment", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to delete apartment"))
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

// LinkByCode handles access-code redemption by customers.
func (ah *ApartmentHandler) LinkByCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LinkByCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		link, err := ah.apartmentService.LinkByCode(ctx, req.CustomerID, req.AccessCode)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrAccessCodeNotFound):
				jsonError(w, http.StatusNotFound, err)
			case errors.Is(err, core.ErrCustomerAlreadyLinked):
				jsonError(w, http.StatusConflict, err)
			case errors.Is(err, core.ErrFieldIsEmpty):
				jsonError(w, http.StatusBadRequest, err)
			default:
				ah.mylog.Action("apartment_link_failed").Error("Failed to link customer", err)
				jsonError(w, http.StatusInternalServerError, errors.New("failed to link customer"))
			}
			return
		}

		jsonResponse(w, http.StatusCreated, link)
	}
}

// LinkManually handles caterer-initiated linking of a customer to one of the
// caterer's apartments.
func (ah *ApartmentHandler) LinkManually() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apartmentID, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.LinkManualRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		link, err := ah.apartmentService.LinkManually(ctx, req.CatererID, req.CustomerID, apartmentID)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrApartmentNotFound):
				jsonError(w, http.StatusNotFound, err)
			case errors.Is(err, core.ErrCustomerAlreadyLinked):
				jsonError(w, http.StatusConflict, err)
			case errors.Is(err, core.ErrFieldIsEmpty):
				jsonError(w, http.StatusBadRequest, err)
			default:
				ah.mylog.Action("apartment_link_failed").Error("Failed to link customer", err)
				jsonError(w, http.StatusInternalServerError, errors.New("failed to link customer"))
			}
			return
		}

		jsonResponse(w, http.StatusCreated, link)
	}
}

// Stats returns customer counts per apartment for the caterer dashboard.
func (ah *ApartmentHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		stats, err := ah.apartmentService.Stats(ctx, catererID)
		if err != nil {
			ah.mylog.Action("apartment_stats_failed").Error("Failed to aggregate apartment stats", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to aggregate apartment stats"))
			return
		}

		jsonResponse(w, http.StatusOK, stats)
	}
}
