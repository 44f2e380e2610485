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

type MenuHandler struct {
	menuService *services.MenuService
	mylog       logger.Logger
}

func NewMenuHandler(menuService *services.MenuService, mylog logger.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		mylog:       mylog,
	}
}

func (mh *MenuHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		items, err := mh.menuService.ListByCaterer(ctx, catererID)
		if err != nil {
			mh.mylog.Action("menu_list_failed").Error("Failed to list menu items", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to list menu items"))
			return
		}

		jsonResponse(w, http.StatusOK, items)
	}
}

// ListByDate returns the items orderable on ?date= (today in IST if absent).
func (mh *MenuHandler) ListByDate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		items, err := mh.menuService.ListAvailable(ctx, catererID, r.URL.Query().Get("date"))
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusOK, items)
	}
}

func (mh *MenuHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateMenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mh.mylog.Action("parse_failed").Error("Failed to parse menu item", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := mh.menuService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		item, err := mh.menuService.Create(ctx, req)
		if err != nil {
			mh.mylog.Action("menu_create_failed").Error("Failed to create menu item", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to create menu item"))
			return
		}

		jsonResponse(w, http.StatusCreated, item)
	}
}

func (mh *MenuHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.UpdateMenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		item, err := mh.menuService.Update(ctx, id, req)
		if err != nil {
			if errors.Is(err, core.ErrMenuItemNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusOK, item)
	}
}

// PatchStock toggles the in-stock flag only.
func (mh *MenuHandler) PatchStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.StockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := mh.menuService.SetStock(ctx, id, req.InStock); err != nil {
			if errors.Is(err, core.ErrMenuItemNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			mh.mylog.Action("menu_stock_failed").Error("Failed to update stock flag", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to update stock flag"))
			return
		}

		jsonResponse(w, http.StatusOK, map[string]any{"id": id, "inStock": req.InStock})
	}
}

func (mh *MenuHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := mh.menuService.Delete(ctx, id); err != nil {
			if errors.Is(err, core.ErrMenuItemNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			mh.mylog.Action("menu_delete_failed").Error("Failed to delete menu item", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to delete menu item"))
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}
