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

type OrderHandler struct {
	orderService *services.OrderService
	mylog        logger.Logger
}

func NewOrderHandler(orderService *services.OrderService, mylog logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		mylog:        mylog,
	}
}

func (oh *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Action("parse_failed").Error("Failed to parse order", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := oh.orderService.ValidateCreate(req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		oh.mylog.Action("order_received").Debug("Received order",
			"customer_id", req.CustomerID, "number_of_items", len(req.Items))

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.orderService.Create(ctx, req)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrMenuItemNotFound):
				jsonError(w, http.StatusNotFound, err)
			case errors.Is(err, core.ErrTotalMismatch):
				jsonError(w, http.StatusBadRequest, err)
			case errors.Is(err, core.ErrDuplicateOrder):
				jsonError(w, http.StatusConflict, err)
			case errors.Is(err, core.ErrDBConn):
				jsonError(w, http.StatusInternalServerError, err)
			default:
				oh.mylog.Action("order_create_failed").Error("Failed to create order", err)
				jsonError(w, http.StatusInternalServerError, errors.New("failed to create order"))
			}
			return
		}

		jsonResponse(w, http.StatusCreated, order)
	}
}

// List returns orders for ?catererId= (optionally filtered by ?status=) or
// for ?customerId=. Exactly one of the two ids must be given.
func (oh *OrderHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		customerID, err := queryID(r, "customerId")
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		if (catererID == 0) == (customerID == 0) {
			jsonError(w, http.StatusBadRequest, errors.New("exactly one of catererId or customerId is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		var orders any
		if catererID != 0 {
			orders, err = oh.orderService.ListByCaterer(ctx, catererID, r.URL.Query().Get("status"))
		} else {
			orders, err = oh.orderService.ListByCustomer(ctx, customerID)
		}
		if err != nil {
			oh.mylog.Action("order_list_failed").Error("Failed to list orders", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to list orders"))
			return
		}

		jsonResponse(w, http.StatusOK, orders)
	}
}

// UpdateStatus advances or cancels an order. Illegal transitions map to 409
// and leave the order unchanged.
func (oh *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("id")
		if orderID == "" {
			jsonError(w, http.StatusBadRequest, errInvalidID)
			return
		}

		var req dto.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.orderService.UpdateStatus(ctx, orderID, req)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrOrderNotFound):
				jsonError(w, http.StatusNotFound, err)
			case errors.Is(err, core.ErrInvalidTransition):
				jsonError(w, http.StatusConflict, err)
			case errors.Is(err, core.ErrDBConn):
				jsonError(w, http.StatusInternalServerError, err)
			default:
				jsonError(w, http.StatusBadRequest, err)
			}
			return
		}

		jsonResponse(w, http.StatusOK, order)
	}
}

func (oh *OrderHandler) StatusLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("id")
		if orderID == "" {
			jsonError(w, http.StatusBadRequest, errInvalidID)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		log, err := oh.orderService.StatusLog(ctx, orderID)
		if err != nil {
			if errors.Is(err, core.ErrOrderNotFound) {
				jsonError(w, http.StatusNotFound, err)
				return
			}
			oh.mylog.Action("order_log_failed").Error("Failed to read status log", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to read status log"))
			return
		}

		jsonResponse(w, http.StatusOK, log)
	}
}

// Summary aggregates a caterer's orders for the dashboard.
func (oh *OrderHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catererID, err := queryID(r, "catererId")
		if err != nil || catererID == 0 {
			jsonError(w, http.StatusBadRequest, errors.New("catererId query parameter is required"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		summary, err := oh.orderService.Summary(ctx, catererID)
		if err != nil {
			oh.mylog.Action("order_summary_failed").Error("Failed to aggregate orders", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to aggregate orders"))
			return
		}

		jsonResponse(w, http.StatusOK, summary)
	}
}
