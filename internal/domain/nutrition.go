package domain

// NutrientKey is the canonical internal name for a nutrient, independent
// of whatever vocabulary the upstream source used.
type NutrientKey string

const (
	KeyEnergy        NutrientKey = "energy" // kilocalories; everything else is grams
	KeyFat           NutrientKey = "fat"
	KeySaturatedFat  NutrientKey = "saturated-fat"
	KeyCarbohydrates NutrientKey = "carbohydrates"
	KeySugars        NutrientKey = "sugars"
	KeyFiber         NutrientKey = "fiber"
	KeyProteins      NutrientKey = "proteins"
	KeySalt          NutrientKey = "salt"
	KeySodium        NutrientKey = "sodium"
	KeyVitaminA      NutrientKey = "vitamin-a"
	KeyVitaminC      NutrientKey = "vitamin-c"
	KeyVitaminD      NutrientKey = "vitamin-d"
	KeyVitaminE      NutrientKey = "vitamin-e"
	KeyVitaminK      NutrientKey = "vitamin-k"
	KeyThiamin       NutrientKey = "thiamin"
	KeyRiboflavin    NutrientKey = "riboflavin"
	KeyNiacin        NutrientKey = "niacin"
	KeyVitaminB6     NutrientKey = "vitamin-b6"
	KeyFolate        NutrientKey = "folate"
	KeyVitaminB12    NutrientKey = "vitamin-b12"
	KeyCalcium       NutrientKey = "calcium"
	KeyIron          NutrientKey = "iron"
	KeyMagnesium     NutrientKey = "magnesium"
	KeyPhosphorus    NutrientKey = "phosphorus"
	KeyPotassium     NutrientKey = "potassium"
	KeyZinc          NutrientKey = "zinc"
	KeyCopper        NutrientKey = "copper"
	KeyManganese     NutrientKey = "manganese"
	KeySelenium      NutrientKey = "selenium"

	// KeyCalories is a legacy alias of KeyEnergy that API consumers read.
	// It only ever appears in the placeholder set.
	KeyCalories NutrientKey = "calories"
)

// RawFood is one food record as it arrives from a source, before
// normalization. Both the FDC API and the local sources hand records to
// the normalizer in this decoded-JSON form.
type RawFood = map[string]any

// FoodRecord is the canonical nutrition record produced by the
// normalizer. Amounts in Nutrients are grams, except energy which is
// kilocalories. A record is built from exactly one raw source record and
// is not modified afterwards.
type FoodRecord struct {
	FDCID       string                  `json:"product_code"`
	Name        string                  `json:"food_name"`
	Brand       string                  `json:"brand,omitempty"`
	ServingSize float64                 `json:"serving_size"`
	ServingUnit string                  `json:"serving_unit"`
	Category    string                  `json:"categories,omitempty"`
	Ingredients string                  `json:"ingredients_text,omitempty"`
	ImageURL    string                  `json:"image_url,omitempty"`
	Origins     string                  `json:"origins,omitempty"`
	Nutrients   map[NutrientKey]float64 `json:"nutrients"`
}

// ResolutionStatus tags the outcome of one resolution call.
type ResolutionStatus string

const (
	StatusSuccess ResolutionStatus = "success"
	StatusPartial ResolutionStatus = "partial" // identified, but no nutrient data
	StatusError   ResolutionStatus = "error"
)

// ResolutionResult is the response of one resolution call: the best
// match plus up to four runner-ups. Main is nil when nothing was found.
// Constructed per request, never persisted.
type ResolutionResult struct {
	Status       ResolutionStatus `json:"status"`
	Message      string           `json:"message,omitempty"`
	Main         *FoodRecord      `json:"data,omitempty"`
	Alternatives []FoodRecord     `json:"alternatives"`
}

// PlaceholderNutrients is the explicit all-zero set backfilled when a
// name match exists but extraction produced nothing. It distinguishes
// "identified but no nutrition data" from "not found"; the status stays
// success to match the original API contract.
func PlaceholderNutrients() map[NutrientKey]float64 {
	return map[NutrientKey]float64{
		KeyEnergy:        0,
		KeyCalories:      0,
		KeyFat:           0,
		KeyCarbohydrates: 0,
		KeyProteins:      0,
		KeySodium:        0,
		KeySalt:          0,
	}
}

// LabelScore is one ranked answer from the image-classification service.
type LabelScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // in [0,1]
}
