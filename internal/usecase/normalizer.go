package usecase

import (
	"strconv"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/nutrient"
)

// unknownFoodName is the display name substituted for records that carry
// no description at all.
const unknownFoodName = "Unknown Food"

// NormalizeFood builds the canonical FoodRecord from one raw source
// record. It tolerates every nutrient-list, category and brand shape the
// supported sources emit, tried in a fixed priority order. A raw value
// that is not a structured record degrades to a name-only record rather
// than failing; the nutrients map is never nil.
func NormalizeFood(raw any) domain.FoodRecord {
	m, ok := raw.(map[string]any)
	if !ok {
		name := unknownFoodName
		if s, isStr := raw.(string); isStr && s != "" {
			name = s
		}
		return domain.FoodRecord{
			Name:        name,
			ServingSize: 100,
			ServingUnit: "g",
			Nutrients:   map[domain.NutrientKey]float64{},
		}
	}

	name := stringField(m, "description")
	if name == "" {
		name = unknownFoodName
	}

	servingSize, ok := numberField(m, "servingSize")
	if !ok || servingSize == 0 {
		servingSize = 100
	}
	servingUnit := stringField(m, "servingSizeUnit")
	if servingUnit == "" {
		servingUnit = "g"
	}

	return domain.FoodRecord{
		FDCID:       idField(m, "fdcId"),
		Name:        name,
		Brand:       brandField(m),
		ServingSize: servingSize,
		ServingUnit: servingUnit,
		Category:    categoryField(m),
		Ingredients: stringField(m, "ingredients"),
		ImageURL:    stringField(m, "image_url"),
		Origins:     stringField(m, "origins"),
		Nutrients:   nutrient.Extract(nutrientEntries(m)),
	}
}

// nutrientEntries locates the nutrient list in whichever shape the record
// carries and flattens it to raw entries. Adapters run in priority order,
// first success wins: the full foodNutrients list, then the
// labelNutrients mapping, then a bare name -> value mapping with amounts
// assumed grams.
func nutrientEntries(m map[string]any) []nutrient.RawNutrient {
	if list, ok := m["foodNutrients"].([]any); ok && len(list) > 0 {
		entries := make([]nutrient.RawNutrient, 0, len(list))
		for _, item := range list {
			if e, ok := parseNutrientEntry(item); ok {
				entries = append(entries, e)
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}
	if label, ok := m["labelNutrients"].(map[string]any); ok && len(label) > 0 {
		entries := make([]nutrient.RawNutrient, 0, len(label))
		for name, v := range label {
			entry := map[string]any{}
			if vm, ok := v.(map[string]any); ok {
				entry = vm
			}
			amount, _ := numberField(entry, "value")
			entries = append(entries, nutrient.RawNutrient{Name: name, Amount: amount})
		}
		return entries
	}
	if flat, ok := m["nutrients"].(map[string]any); ok && len(flat) > 0 {
		entries := make([]nutrient.RawNutrient, 0, len(flat))
		for name, v := range flat {
			amount, _ := toNumber(v)
			entries = append(entries, nutrient.RawNutrient{Name: name, Amount: amount})
		}
		return entries
	}
	return nil
}

// parseNutrientEntry flattens one list item. Three shapes exist upstream:
// nested {nutrient:{id,name,unitName},amount}, the legacy
// {number,name,amount} form, and the flat search-result form with
// nutrientId/nutrientName/value aliases.
func parseNutrientEntry(item any) (nutrient.RawNutrient, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return nutrient.RawNutrient{}, false
	}

	if nested, ok := m["nutrient"].(map[string]any); ok {
		amount, _ := numberField(m, "amount")
		return nutrient.RawNutrient{
			ID:     intField(nested, "id"),
			Name:   stringField(nested, "name"),
			Amount: amount,
			Unit:   stringField(nested, "unitName"),
		}, true
	}

	if _, ok := m["number"]; ok {
		amount, _ := numberField(m, "amount")
		return nutrient.RawNutrient{
			ID:     intField(m, "number"),
			Name:   stringField(m, "name"),
			Amount: amount,
			Unit:   stringField(m, "unitName"),
		}, true
	}

	id := intField(m, "nutrientId")
	if id == 0 {
		id = intField(m, "id")
	}
	name := stringField(m, "nutrientName")
	if name == "" {
		name = stringField(m, "name")
	}
	amount, ok := numberField(m, "amount")
	if !ok {
		amount, _ = numberField(m, "value")
	}
	return nutrient.RawNutrient{ID: id, Name: name, Amount: amount, Unit: stringField(m, "unitName")}, true
}

// categoryField selects the category text: the foodCategory object's
// description outranks a plain string, foodCategory outranks foodGroup,
// and the snake_case form used by stored rows comes last.
func categoryField(m map[string]any) string {
	for _, key := range []string{"foodCategory", "foodGroup"} {
		switch v := m[key].(type) {
		case map[string]any:
			if desc := stringField(v, "description"); desc != "" {
				return desc
			}
		case string:
			if v != "" {
				return v
			}
		}
	}
	return stringField(m, "food_category")
}

// brandField selects the brand: the specific brandName over the generic
// brandOwner over a bare brand field.
func brandField(m map[string]any) string {
	for _, key := range []string{"brandName", "brandOwner", "brand"} {
		if v := stringField(m, key); v != "" {
			return v
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// idField renders an external identifier, which sources emit either as a
// JSON number or a string, as an opaque string.
func idField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func numberField(m map[string]any, key string) (float64, bool) {
	return toNumber(m[key])
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func intField(m map[string]any, key string) int {
	n, ok := toNumber(m[key])
	if !ok {
		return 0
	}
	return int(n)
}
