package nutrient

import "github.com/nutriscan/backend/internal/domain"

// RawNutrient is one nutrient observation from an upstream source before
// normalization. ID zero means "no numeric identifier". Amount zero is
// indistinguishable from absent: upstream sources use 0 for both.
type RawNutrient struct {
	ID     int
	Name   string
	Amount float64
	Unit   string
}

// Extract reduces a raw nutrient list to the canonical key -> amount
// mapping. Per entry: numeric id lookup first, free-text name fallback,
// each key filled at most once (first source wins within a record).
// Kilojoule-denominated energy only applies when no kcal entry set
// energy, and salt/sodium derive each other at the end. Deterministic
// for a given input sequence; an empty input yields an empty map.
func Extract(entries []RawNutrient) map[domain.NutrientKey]float64 {
	out := make(map[domain.NutrientKey]float64)

	var energyKJ float64
	haveEnergyKJ := false

	for _, e := range entries {
		if e.Amount == 0 {
			continue
		}
		if e.ID == 0 && e.Name == "" {
			continue
		}

		// kJ energy is held back; kcal-denominated energy wins when both exist.
		if e.ID == fdcIDEnergyKJ {
			if !haveEnergyKJ {
				energyKJ = e.Amount
				haveEnergyKJ = true
			}
			continue
		}

		if e.ID != 0 {
			if key, ok := keyByID(e.ID); ok {
				record(out, key, e.Amount, e.Unit)
				continue
			}
		}
		if e.Name != "" {
			if key, ok := keyByName(e.Name); ok {
				record(out, key, e.Amount, e.Unit)
			}
		}
	}

	if haveEnergyKJ {
		if _, ok := out[domain.KeyEnergy]; !ok {
			out[domain.KeyEnergy] = energyKJ * kJPerKcal
		}
	}

	deriveSaltSodium(out)
	return out
}

// record converts and stores an amount, unless the key is already
// populated or the unit is not convertible.
func record(out map[domain.NutrientKey]float64, key domain.NutrientKey, amount float64, unit string) {
	if _, ok := out[key]; ok {
		return
	}
	factor, ok := unitFactor(unit, key)
	if !ok {
		return
	}
	out[key] = amount * factor
}

// deriveSaltSodium fills in whichever of salt/sodium the source omitted,
// using the fixed 2.5 approximation. Derived values carry no provenance
// marker; callers cannot tell measured from derived.
func deriveSaltSodium(out map[domain.NutrientKey]float64) {
	sodium, haveSodium := out[domain.KeySodium]
	salt, haveSalt := out[domain.KeySalt]

	switch {
	case haveSodium && !haveSalt:
		out[domain.KeySalt] = sodium * saltSodiumFactor
	case haveSalt && !haveSodium:
		out[domain.KeySodium] = salt / saltSodiumFactor
	}
}
