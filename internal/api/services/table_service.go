package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
	"tiffinbox/internal/xpkg/logger"
)

type TableService struct {
	tableRepo core.ITableRepo
	mylog     logger.Logger
}

func NewTableService(tableRepo core.ITableRepo, mylog logger.Logger) *TableService {
	return &TableService{tableRepo: tableRepo, mylog: mylog}
}

func (s *TableService) ValidateBulk(req dto.BulkTablesRequest) error {
	if req.CatererID <= 0 {
		return fmt.Errorf("invalid caterer id: %w", core.ErrFieldIsEmpty)
	}
	if strings.TrimSpace(req.RestaurantName) == "" {
		return fmt.Errorf("invalid restaurant name: %w", core.ErrFieldIsEmpty)
	}
	if req.Count < core.MinBulkTables || req.Count > core.MaxBulkTables {
		return fmt.Errorf("table count: %d, must be in range [%d, %d]",
			req.Count, core.MinBulkTables, core.MaxBulkTables)
	}
	return nil
}

// CreateBulk provisions a batch of numbered tables, each carrying the JSON
// payload a QR image for that table would embed. Image rendering and upload
// live outside this service.
func (s *TableService) CreateBulk(ctx context.Context, req dto.BulkTablesRequest) ([]models.RestaurantTable, error) {
	mylog := s.mylog.Action("tables_bulk_create")

	start := req.StartNumber
	if start <= 0 {
		start = 1
	}

	now := time.Now().In(core.IST).Format(time.RFC3339)
	tables := make([]models.RestaurantTable, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		tableNumber := fmt.Sprintf("Table %d", start+i)

		payload, err := json.Marshal(models.TableQRPayload{
			CatererID:      req.CatererID,
			TableNumber:    tableNumber,
			RestaurantName: req.RestaurantName,
			Timestamp:      now,
		})
		if err != nil {
			return nil, err
		}

		tables = append(tables, models.RestaurantTable{
			CatererID:   req.CatererID,
			TableNumber: tableNumber,
			QRData:      string(payload),
			IsActive:    true,
		})
	}

	created, err := s.tableRepo.CreateBulk(ctx, tables)
	if err != nil {
		mylog.Error("Failed to create tables", err)
		return nil, err
	}

	mylog.Info("Tables created", "caterer_id", req.CatererID, "count", len(created))
	return created, nil
}

func (s *TableService) List(ctx context.Context, catererID int64) ([]models.RestaurantTable, error) {
	return s.tableRepo.List(ctx, catererID)
}

func (s *TableService) Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (models.RestaurantTable, error) {
	if req.TableNumber == nil && req.IsActive == nil {
		return models.RestaurantTable{}, fmt.Errorf("nothing to update: %w", core.ErrFieldIsEmpty)
	}
	if req.TableNumber != nil && strings.TrimSpace(*req.TableNumber) == "" {
		return models.RestaurantTable{}, fmt.Errorf("invalid table number: %w", core.ErrFieldIsEmpty)
	}
	return s.tableRepo.Update(ctx, id, req)
}

func (s *TableService) Delete(ctx context.Context, id int64) error {
	return s.tableRepo.Delete(ctx, id)
}

func (s *TableService) RecordScan(ctx context.Context, tableID int64) (models.QRScan, error) {
	return s.tableRepo.RecordScan(ctx, tableID)
}
