// Package dataset serves food lookups from a bundled FDC bulk JSON file
// instead of the database. The file is loaded lazily exactly once per
// process and never mutated afterwards, so concurrent readers share one
// immutable slice.
package dataset

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nutriscan/backend/internal/domain"
)

// Source is a file-backed domain.FoodSource.
type Source struct {
	path string
	log  *zap.Logger

	once  sync.Once
	foods []any
}

// New creates a source over the bulk JSON file at path. The file is not
// touched until the first lookup.
func New(path string, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{path: path, log: log}
}

// load reads the file on first use. A missing or malformed file leaves
// the dataset empty rather than failing lookups; every search then
// degrades to the remote API.
func (s *Source) load() []any {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.log.Warn("bulk dataset unavailable", zap.String("path", s.path), zap.Error(err))
			return
		}
		foods, err := decodeFoods(data)
		if err != nil {
			s.log.Error("bulk dataset malformed", zap.String("path", s.path), zap.Error(err))
			return
		}
		s.foods = foods
		s.log.Info("bulk dataset loaded", zap.String("path", s.path), zap.Int("foods", len(foods)))
	})
	return s.foods
}

// decodeFoods accepts the two bulk layouts FDC publishes: a bare array
// of food objects, or an object wrapping the array (FoundationFoods and
// friends).
func decodeFoods(data []byte) ([]any, error) {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	for _, raw := range wrapped {
		var inner []any
		if err := json.Unmarshal(raw, &inner); err == nil {
			return inner, nil
		}
	}
	return nil, nil
}

// SearchByName scans for descriptions containing query, case-insensitive,
// capped at limit. Bare string entries degrade to name-only records.
func (s *Source) SearchByName(ctx context.Context, query string, limit int) ([]domain.RawFood, error) {
	lower := strings.ToLower(query)
	var matches []domain.RawFood

	for _, entry := range s.load() {
		switch food := entry.(type) {
		case map[string]any:
			name, _ := food["description"].(string)
			if strings.Contains(strings.ToLower(name), lower) {
				matches = append(matches, food)
			}
		case string:
			if strings.Contains(strings.ToLower(food), lower) {
				matches = append(matches, domain.RawFood{"description": food})
			}
		}
		if len(matches) >= limit {
			break
		}
	}

	s.log.Info("dataset search", zap.String("query", query), zap.Int("results", len(matches)))
	return matches, nil
}

// GetByFDCID scans for the exact external id, or ErrFoodNotFound.
func (s *Source) GetByFDCID(ctx context.Context, fdcID string) (domain.RawFood, error) {
	for _, entry := range s.load() {
		food, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if entryID(food) == fdcID {
			return food, nil
		}
	}
	return nil, domain.ErrFoodNotFound
}

func entryID(food map[string]any) string {
	switch v := food["fdcId"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}
