// Package importer populates the local store from a bulk FDC dataset.
// Every food goes through the same normalizer the resolution pipeline
// uses, so imported rows and on-the-fly API records carry identical
// canonical nutrients.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/infrastructure/store"
	"github.com/nutriscan/backend/internal/usecase"
)

// Options control one import run.
type Options struct {
	// Clear drops existing rows before importing.
	Clear bool
	// BatchSize is the insert batch size; <=0 means 1000.
	BatchSize int
	// MaxFoods caps the number of imported foods; <=0 means no cap.
	MaxFoods int
}

// Importer loads bulk data into the SQLite store.
type Importer struct {
	store *store.Store
	log   *zap.Logger
}

// New creates an importer writing to s.
func New(s *store.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: s, log: log}
}

// Run imports the dataset at path and returns the number of foods
// stored. Foods without an external id or display name are skipped, not
// fatal.
func (i *Importer) Run(ctx context.Context, path string, opts Options) (int, error) {
	foods, err := readFoods(path)
	if err != nil {
		return 0, err
	}
	i.log.Info("bulk dataset read", zap.String("path", path), zap.Int("foods", len(foods)))

	if opts.Clear {
		if err := i.store.Clear(ctx); err != nil {
			return 0, fmt.Errorf("clearing store: %w", err)
		}
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	var rows []store.FoodRow
	skipped := 0
	for _, food := range foods {
		if opts.MaxFoods > 0 && len(rows) >= opts.MaxFoods {
			break
		}
		row, ok := toRow(food)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if err := i.store.InsertFoods(ctx, rows, batchSize); err != nil {
		return 0, err
	}

	i.log.Info("import finished", zap.Int("imported", len(rows)), zap.Int("skipped", skipped))
	return len(rows), nil
}

// toRow runs one raw food through the shared normalizer and maps the
// canonical record onto the storage schema.
func toRow(raw domain.RawFood) (store.FoodRow, bool) {
	rec := usecase.NormalizeFood(raw)
	if rec.FDCID == "" || rec.Name == "" {
		return store.FoodRow{}, false
	}

	nutrients := make([]store.NutrientRow, 0, len(rec.Nutrients))
	for key, amount := range rec.Nutrients {
		nutrients = append(nutrients, store.NutrientRow{
			NutrientType: string(key),
			Amount:       amount,
		})
	}

	return store.FoodRow{
		FDCID:           rec.FDCID,
		Description:     rec.Name,
		Brand:           rec.Brand,
		ServingSize:     rec.ServingSize,
		ServingUnit:     rec.ServingUnit,
		FoodCategory:    rec.Category,
		IngredientsText: rec.Ingredients,
		ImageURL:        rec.ImageURL,
		Origins:         rec.Origins,
		Nutrients:       nutrients,
	}, true
}

// readFoods parses the bulk file: a bare JSON array, an object wrapping
// the array, or JSON lines (one food per line, trailing commas
// tolerated).
func readFoods(path string) ([]domain.RawFood, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var list []domain.RawFood
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err == nil {
		for _, raw := range wrapped {
			var inner []domain.RawFood
			if err := json.Unmarshal(raw, &inner); err == nil {
				return inner, nil
			}
		}
	}

	return readJSONLines(data)
}

func readJSONLines(data []byte) ([]domain.RawFood, error) {
	var foods []domain.RawFood
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSuffix(line, ",")
		if line == "" || line == "[" || line == "]" {
			continue
		}
		var food domain.RawFood
		if err := json.Unmarshal([]byte(line), &food); err != nil {
			continue
		}
		foods = append(foods, food)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("dataset contains no parseable foods")
	}
	return foods, nil
}
