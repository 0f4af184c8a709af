// Package store is the SQLite-backed local food dataset. Rows are
// projected into the same raw record shape the FDC API produces, so
// imported data and on-the-fly API data normalize through one path.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriscan/backend/internal/domain"
)

// Store wraps the SQLite database behind the read-only query surface the
// resolver consumes, plus the write path the importer uses.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (creating if needed) the SQLite database at path and
// migrates the schema.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&FoodRow{}, &NutrientRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// SearchByName returns foods whose description contains query as a
// case-insensitive substring, ordered by description ascending, capped
// at limit. SQLite LIKE is case-insensitive for ASCII, matching the
// engine's matching contract.
func (s *Store) SearchByName(ctx context.Context, query string, limit int) ([]domain.RawFood, error) {
	var rows []FoodRow
	err := s.db.WithContext(ctx).
		Preload("Nutrients").
		Where("description LIKE ?", "%"+query+"%").
		Order("description ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("local search %q: %w", query, err)
	}

	foods := make([]domain.RawFood, 0, len(rows))
	for _, row := range rows {
		foods = append(foods, rawFromRow(row))
	}
	s.log.Info("local search", zap.String("query", query), zap.Int("results", len(foods)))
	return foods, nil
}

// GetByFDCID returns the food with the exact external id, or
// ErrFoodNotFound.
func (s *Store) GetByFDCID(ctx context.Context, fdcID string) (domain.RawFood, error) {
	var row FoodRow
	err := s.db.WithContext(ctx).
		Preload("Nutrients").
		Where("fdc_id = ?", fdcID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("local lookup %q: %w", fdcID, err)
	}
	return rawFromRow(row), nil
}

// rawFromRow projects a stored row into the raw record shape the
// normalizer understands. Nutrient amounts are already canonical, so the
// entries carry names and no units.
func rawFromRow(row FoodRow) domain.RawFood {
	nutrients := make([]any, 0, len(row.Nutrients))
	for _, n := range row.Nutrients {
		nutrients = append(nutrients, map[string]any{
			"nutrientName": n.NutrientType,
			"amount":       n.Amount,
		})
	}

	return domain.RawFood{
		"fdcId":           row.FDCID,
		"description":     row.Description,
		"brandName":       row.Brand,
		"servingSize":     row.ServingSize,
		"servingSizeUnit": row.ServingUnit,
		"foodCategory":    row.FoodCategory,
		"ingredients":     row.IngredientsText,
		"image_url":       row.ImageURL,
		"origins":         row.Origins,
		"foodNutrients":   nutrients,
	}
}

// InsertFoods batch-inserts foods with their nutrients. Importer-only.
func (s *Store) InsertFoods(ctx context.Context, rows []FoodRow, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}
	return nil
}

// Clear deletes all foods and nutrients. Importer-only.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&NutrientRow{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&FoodRow{}).Error
	})
}

// Count returns the number of stored foods.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&FoodRow{}).Count(&n).Error
	return n, err
}
