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

type TableHandler struct {
	tableService *services.TableService
	mylog        logger.Logger
}

func NewTableHandler(tableService *services.TableService, mylog logger.Logger) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		mylog:        mylog,
	}
}

func (th *TableHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		tables, err := th.tableService.List(ctx, catererID)
		if err != nil {
			th.mylog.Action("table_list_failed").Error("Failed to list tables", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to list tables"))
			return
		}

		jsonResponse(w, http.StatusOK, tables)
	}
}

func (th *TableHandler) CreateBulk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.BulkTablesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := th.tableService.ValidateBulk(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		tables, err := th.tableService.CreateBulk(ctx, req)
		if err != nil {
			th.mylog.Action("table_bulk_failed").Error("Failed to create tables", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to create tables"))
			return
		}

		jsonResponse(w, http.StatusCreated, tables)
	}
}

func (th *TableHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var req dto.UpdateTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		table, err := th.tableService.Update(ctx, id, req)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTableNotFound):
				jsonError(w, http.StatusNotFound, err)
			case errors.Is(err, core.ErrFieldIsEmpty):
				jsonError(w, http.StatusBadRequest, err)
			default:
				th.mylog.Action("table_update_failed").Error("Failed to update table", err)
				jsonError(w, http.StatusInternalServerError, errors.New("failed to update table"))
			}
			return
		}

		jsonResponse(w, http.StatusOK, table)
	}
}

func (th *TableHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := th.tableService.Delete(ctx, id); err != nil {
			if errors.Is(err, core.ErrTableNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			th.mylog.Action("table_delete_failed").Error("Failed to delete table", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to delete table"))
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

// Scan records one QR scan event against the table.
func (th *TableHandler) Scan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		scan, err := th.tableService.RecordScan(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrTableNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			th.mylog.Action("table_scan_failed").Error("Failed to record scan", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to record scan"))
			return
		}

		jsonResponse(w, http.StatusCreated, scan)
	}
}
