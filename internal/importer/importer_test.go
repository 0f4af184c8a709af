package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/infrastructure/store"
	"github.com/nutriscan/backend/internal/usecase"
)

const bulkSample = `[
	{
		"fdcId": 171688,
		"description": "Apples, raw, with skin",
		"foodCategory": {"description": "Fruits and Fruit Juices"},
		"foodNutrients": [
			{"nutrient": {"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 52},
			{"nutrient": {"id": 1093, "name": "Sodium, Na", "unitName": "mg"}, "amount": 1}
		]
	},
	{
		"description": "No id, skipped"
	},
	{
		"fdcId": 173944,
		"description": "Bananas, raw",
		"foodNutrients": [
			{"nutrient": {"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 89}
		]
	}
]`

func setup(t *testing.T) (*Importer, *store.Store, string) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "import.db"), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bulk.json")
	require.NoError(t, os.WriteFile(path, []byte(bulkSample), 0o644))

	return New(s, nil), s, path
}

func TestRun_ImportsAndSkips(t *testing.T) {
	imp, s, path := setup(t)
	ctx := context.Background()

	n, err := imp.Run(ctx, path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRun_ImportedRowsNormalizeLikeAPIData(t *testing.T) {
	// The invariant the importer exists for: a record resolved from the
	// store must carry the same canonical nutrients as the raw API record
	// normalized directly.
	imp, s, path := setup(t)
	ctx := context.Background()

	_, err := imp.Run(ctx, path, Options{})
	require.NoError(t, err)

	raw, err := s.GetByFDCID(ctx, "171688")
	require.NoError(t, err)
	fromStore := usecase.NormalizeFood(raw)

	direct := usecase.NormalizeFood(domain.RawFood{
		"fdcId":       float64(171688),
		"description": "Apples, raw, with skin",
		"foodNutrients": []any{
			map[string]any{
				"nutrient": map[string]any{"id": float64(1008), "name": "Energy", "unitName": "kcal"},
				"amount":   float64(52),
			},
			map[string]any{
				"nutrient": map[string]any{"id": float64(1093), "name": "Sodium, Na", "unitName": "mg"},
				"amount":   float64(1),
			},
		},
	})

	require.Len(t, fromStore.Nutrients, len(direct.Nutrients))
	for key, want := range direct.Nutrients {
		assert.InDeltaf(t, want, fromStore.Nutrients[key], 1e-9, "nutrient %s", key)
	}
}

func TestRun_ClearAndCap(t *testing.T) {
	imp, s, path := setup(t)
	ctx := context.Background()

	_, err := imp.Run(ctx, path, Options{})
	require.NoError(t, err)

	n, err := imp.Run(ctx, path, Options{Clear: true, MaxFoods: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestReadFoods_JSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.json")
	content := "{\"fdcId\": 1, \"description\": \"Butter\"},\n{\"fdcId\": 2, \"description\": \"Milk\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	foods, err := readFoods(path)
	require.NoError(t, err)
	assert.Len(t, foods, 2)
}
