// Package nutrient maps source-specific nutrient identifiers, names and
// units onto the canonical nutrient keys. The same tables serve both the
// resolution pipeline and the bulk importer, so imported rows and
// on-the-fly API records normalize identically.
package nutrient

import (
	"strings"

	"github.com/nutriscan/backend/internal/domain"
)

// fdcIDEnergyKJ is the FDC nutrient number for kilojoule-denominated
// energy. It is handled outside idToKey: a kJ reading only fills energy
// when no kcal-denominated entry did.
const fdcIDEnergyKJ = 1062

// kJPerKcal converts kilojoules to kilocalories.
const kJPerKcal = 0.239

// saltSodiumFactor is the fixed salt = sodium x 2.5 approximation used
// when a source reports only one of the two.
const saltSodiumFactor = 2.5

// idToKey maps FDC nutrient numbers to canonical keys. Several numbers
// mean the same nutrient across FDC data types. Lookup scans idOrder, so
// the first key checked wins if a number ever appears in two sets; the
// sets below are disjoint.
// See https://fdc.nal.usda.gov/docs for the number registry.
var idToKey = map[domain.NutrientKey][]int{
	domain.KeyEnergy:        {1008, 2047, 2048},
	domain.KeyFat:           {1004, 1085},
	domain.KeySaturatedFat:  {1258, 1257},
	domain.KeyCarbohydrates: {1005, 1050},
	domain.KeySugars:        {2000, 1063},
	domain.KeyFiber:         {1079, 1082},
	domain.KeyProteins:      {1003},
	domain.KeySodium:        {1093},
	domain.KeyVitaminA:      {1106},
	domain.KeyVitaminC:      {1162},
	domain.KeyVitaminD:      {1114},
	domain.KeyVitaminE:      {1109},
	domain.KeyVitaminK:      {1185},
	domain.KeyThiamin:       {1165},
	domain.KeyRiboflavin:    {1166},
	domain.KeyNiacin:        {1167},
	domain.KeyVitaminB6:     {1175},
	domain.KeyFolate:        {1177},
	domain.KeyVitaminB12:    {1178},
	domain.KeyCalcium:       {1087},
	domain.KeyIron:          {1089},
	domain.KeyMagnesium:     {1090},
	domain.KeyPhosphorus:    {1091},
	domain.KeyPotassium:     {1092},
	domain.KeyZinc:          {1095},
	domain.KeyCopper:        {1098},
	domain.KeyManganese:     {1101},
	domain.KeySelenium:      {1103},
}

// idOrder fixes the scan order of idToKey. Go map iteration is random,
// and the tie-break contract is "first key checked wins".
var idOrder = []domain.NutrientKey{
	domain.KeyEnergy,
	domain.KeySaturatedFat,
	domain.KeyFat,
	domain.KeyCarbohydrates,
	domain.KeySugars,
	domain.KeyFiber,
	domain.KeyProteins,
	domain.KeySodium,
	domain.KeyVitaminA,
	domain.KeyVitaminC,
	domain.KeyVitaminD,
	domain.KeyVitaminE,
	domain.KeyVitaminK,
	domain.KeyThiamin,
	domain.KeyRiboflavin,
	domain.KeyNiacin,
	domain.KeyVitaminB6,
	domain.KeyFolate,
	domain.KeyVitaminB12,
	domain.KeyCalcium,
	domain.KeyIron,
	domain.KeyMagnesium,
	domain.KeyPhosphorus,
	domain.KeyPotassium,
	domain.KeyZinc,
	domain.KeyCopper,
	domain.KeyManganese,
	domain.KeySelenium,
}

// namePattern is one case-insensitive substring check against a
// free-text nutrient name, used only when no numeric id matched.
type namePattern struct {
	substr string
	key    domain.NutrientKey
}

// namePatterns are checked in order: energy synonyms first, then
// macronutrients with the saturated check ahead of the generic fat
// check, then salt ahead of sodium so "sodium chloride" lands on salt.
var namePatterns = []namePattern{
	{"energy", domain.KeyEnergy},
	{"calorie", domain.KeyEnergy},
	{"kcal", domain.KeyEnergy},
	{"saturated", domain.KeySaturatedFat},
	{"total lipid", domain.KeyFat},
	{"lipid", domain.KeyFat},
	{"fat", domain.KeyFat},
	{"carbohydrate", domain.KeyCarbohydrates},
	{"carbs", domain.KeyCarbohydrates},
	{"sugar", domain.KeySugars},
	{"fiber", domain.KeyFiber},
	{"protein", domain.KeyProteins},
	{"sodium chloride", domain.KeySalt},
	{"salt", domain.KeySalt},
	{"sodium", domain.KeySodium},
}

// unitToGrams converts a raw amount to grams (or kilocalories for
// energy-denominated units). IU has no mass equivalent and is mapped to
// zero so entries carrying it are dropped.
var unitToGrams = map[string]float64{
	"g":    1,
	"mg":   0.001,
	"µg":   0.000001,
	"mcg":  0.000001,
	"kcal": 1,
	"kj":   kJPerKcal,
	"iu":   0,
}

// keyByID resolves an FDC nutrient number to a canonical key.
func keyByID(id int) (domain.NutrientKey, bool) {
	for _, key := range idOrder {
		for _, known := range idToKey[key] {
			if known == id {
				return key, true
			}
		}
	}
	return "", false
}

// keyByName resolves a free-text nutrient name to a canonical key.
func keyByName(name string) (domain.NutrientKey, bool) {
	lower := strings.ToLower(name)
	for _, p := range namePatterns {
		if strings.Contains(lower, p.substr) {
			return p.key, true
		}
	}
	return "", false
}

// unitFactor returns the multiplier for a raw unit string. Unknown or
// absent units are treated as already canonical. The kJ factor only
// applies to energy; a kJ unit on a mass nutrient makes no sense and is
// passed through unconverted.
func unitFactor(unit string, key domain.NutrientKey) (float64, bool) {
	lower := strings.ToLower(strings.TrimSpace(unit))
	if lower == "" {
		return 1, true
	}
	if lower == "kj" && key != domain.KeyEnergy {
		return 1, true
	}
	factor, ok := unitToGrams[lower]
	if !ok {
		return 1, true
	}
	if factor == 0 {
		return 0, false // IU and friends: not convertible, drop the entry
	}
	return factor, true
}
