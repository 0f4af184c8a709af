package domain

import "time"

// Prediction is one stored image-classification outcome, keyed by owner.
type Prediction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FoodClass     string    `json:"food_class"`
	Confidence    float64   `json:"confidence"`
	ImageFilename string    `json:"image_filename"`
	CreatedAt     time.Time `json:"created_at"`
}
