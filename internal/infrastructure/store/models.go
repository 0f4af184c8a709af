package store

// FoodRow is one persisted food record. The schema is fixed: the
// resolution engine only reads it, the importer is the sole writer.
type FoodRow struct {
	ID              uint   `gorm:"primaryKey"`
	FDCID           string `gorm:"column:fdc_id;uniqueIndex"`
	Description     string `gorm:"not null;index"`
	Brand           string
	ServingSize     float64 `gorm:"default:100"`
	ServingUnit     string  `gorm:"default:g"`
	FoodCategory    string
	IngredientsText string
	ImageURL        string `gorm:"column:image_url"`
	Origins         string

	Nutrients []NutrientRow `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE"`
}

func (FoodRow) TableName() string { return "foods" }

// NutrientRow is one (nutrient key, amount) pair belonging to a food.
// Amounts are stored canonical: grams, kilocalories for energy.
type NutrientRow struct {
	ID           uint    `gorm:"primaryKey"`
	FoodID       uint    `gorm:"uniqueIndex:idx_food_nutrient"`
	NutrientType string  `gorm:"uniqueIndex:idx_food_nutrient;not null"`
	Amount       float64 `gorm:"not null"`
}

func (NutrientRow) TableName() string { return "nutrients" }
