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

type CuisineHandler struct {
	cuisineService *services.CuisineService
	mylog          logger.Logger
}

func NewCuisineHandler(cuisineService *services.CuisineService, mylog logger.Logger) *CuisineHandler {
	return &CuisineHandler{
		cuisineService: cuisineService,
		mylog:          mylog,
	}
}

func (ch *CuisineHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		cuisines, err := ch.cuisineService.List(ctx)
		if err != nil {
			ch.mylog.Action("cuisine_list_failed").Error("Failed to list cuisines", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to list cuisines"))
			return
		}

		jsonResponse(w, http.StatusOK, cuisines)
	}
}

func (ch *CuisineHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateCuisineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		cuisine, err := ch.cuisineService.Create(ctx, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrFieldIsEmpty):
				jsonError(w, http.StatusBadRequest, err)
			case errors.Is(err, core.ErrDuplicateCuisine):
				jsonError(w, http.StatusConflict, err)
			default:
				ch.mylog.Action("cuisine_create_failed").Error("Failed to create cuisine", err)
				jsonError(w, http.StatusInternalServerError, errors.New("failed to create cuisine"))
			}
			return
		}

		jsonResponse(w, http.StatusCreated, cuisine)
	}
}
