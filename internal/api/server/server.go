package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"tiffinbox/internal/api/adapter/broker"
	database "tiffinbox/internal/api/adapter/db"
	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/handle"
	"tiffinbox/internal/api/services"
	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/db"
	"tiffinbox/internal/xpkg/logger"
)

var ErrServerClosed = errors.New("server closed")

type Server struct {
	ctx    context.Context
	appCtx context.Context
	cfg    *config.Config
	params *core.APIParams
	mylog  logger.Logger

	mux *http.ServeMux
	srv *http.Server
	db  core.IDB
	mb  core.IBroker
	mu  sync.Mutex
}

func New(ctx, appCtx context.Context, cfg *config.Config, params *core.APIParams, mylog logger.Logger) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		params: params,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run connects the database and the message broker, registers routes and
// serves until the context is cancelled or the listener fails.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	pool, err := db.Start(s.appCtx, s.cfg.DB, s.mylog)
	if err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return err
	}
	s.db = pool

	mb, err := broker.Connect(s.cfg.RMQ, s.mylog)
	if err != nil {
		mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
		return err
	}
	s.mb = mb

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.params.Port),
		Handler: s.withRequestID(s.mux),
	}
	s.mu.Unlock()

	mylog.With("port", s.params.Port).Info("server is running")
	return s.startHTTPServer()
}

// Stop shuts the server down gracefully and closes its connections.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Action("db_closed").Info("Database closed")
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			return fmt.Errorf("mb close: %w", err)
		}
		s.mylog.Action("mb_closed").Info("Message broker closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure builds repositories, services and handlers and registers routes.
func (s *Server) Configure() {
	apartmentRepo := database.NewApartmentRepo(s.db, s.mylog)
	cuisineRepo := database.NewCuisineRepo(s.db)
	menuRepo := database.NewMenuRepo(s.db)
	tableRepo := database.NewTableRepo(s.db)
	orderRepo := database.NewOrderRepo(s.db, s.mylog)

	apartmentService := services.NewApartmentService(apartmentRepo, s.mylog)
	cuisineService := services.NewCuisineService(cuisineRepo, s.mylog)
	menuService := services.NewMenuService(menuRepo, s.mylog)
	tableService := services.NewTableService(tableRepo, s.mylog)
	orderService := services.NewOrderService(orderRepo, menuRepo, s.mb, s.mylog)

	apartmentHandler := handle.NewApartmentHandler(apartmentService, s.mylog)
	cuisineHandler := handle.NewCuisineHandler(cuisineService, s.mylog)
	menuHandler := handle.NewMenuHandler(menuService, s.mylog)
	tableHandler := handle.NewTableHandler(tableService, s.mylog)
	orderHandler := handle.NewOrderHandler(orderService, s.mylog)

	s.mux.Handle("GET /api/apartments", apartmentHandler.List())
	s.mux.Handle("POST /api/apartments", apartmentHandler.Create())
	s.mux.Handle("GET /api/apartments/stats", apartmentHandler.Stats())
	s.mux.Handle("POST /api/apartments/link", apartmentHandler.LinkByCode())
	s.mux.Handle("POST /api/apartments/{id}/customers", apartmentHandler.LinkManually())
	s.mux.Handle("DELETE /api/apartments/{id}", apartmentHandler.Delete())

	s.mux.Handle("GET /api/cuisines", cuisineHandler.List())
	s.mux.Handle("POST /api/cuisines", cuisineHandler.Create())

	s.mux.Handle("GET /api/caterer-menus", menuHandler.List())
	s.mux.Handle("GET /api/caterer-menus/date", menuHandler.ListByDate())
	s.mux.Handle("POST /api/caterer-menus", menuHandler.Create())
	s.mux.Handle("PUT /api/caterer-menus/{id}", menuHandler.Update())
	s.mux.Handle("PATCH /api/caterer-menus/{id}/stock", menuHandler.PatchStock())
	s.mux.Handle("DELETE /api/caterer-menus/{id}", menuHandler.Delete())

	s.mux.Handle("GET /api/tables", tableHandler.List())
	s.mux.Handle("POST /api/tables/bulk", tableHandler.CreateBulk())
	s.mux.Handle("PATCH /api/tables/{id}", tableHandler.Update())
	s.mux.Handle("DELETE /api/tables/{id}", tableHandler.Delete())
	s.mux.Handle("POST /api/tables/{id}/scan", tableHandler.Scan())

	s.mux.Handle("POST /api/orders", orderHandler.Create())
	s.mux.Handle("GET /api/orders", orderHandler.List())
	s.mux.Handle("GET /api/orders/summary", orderHandler.Summary())
	s.mux.Handle("GET /api/orders/{id}/status-log", orderHandler.StatusLog())
	s.mux.Handle("PATCH /api/orders/{id}/status", orderHandler.UpdateStatus())

	s.mux.HandleFunc("GET /health", s.health)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.IsAlive(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// withRequestID tags every request with an id and writes one access log line.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		s.mylog.With("request_id", requestID).Action("request_received").
			Debug("Handling request", "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(w, r)
	})
}
