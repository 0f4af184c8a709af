package domain

import "context"

// FoodSource is the read-only query surface of a local food dataset
// (database or bundled file). The resolution engine never writes
// through it.
type FoodSource interface {
	// SearchByName returns records whose display name contains query as a
	// case-insensitive substring, ordered by name ascending, capped at limit.
	SearchByName(ctx context.Context, query string, limit int) ([]RawFood, error)

	// GetByFDCID returns the record with the exact external identifier,
	// or ErrFoodNotFound.
	GetByFDCID(ctx context.Context, fdcID string) (RawFood, error)
}

// RemoteAPI is the third-party nutrition-facts service, consulted only
// on a local miss.
type RemoteAPI interface {
	Search(ctx context.Context, query string, pageSize int) ([]RawFood, error)
	GetFood(ctx context.Context, fdcID string) (RawFood, error)
}

// Classifier is the image-classification collaborator: a black box that
// takes image bytes and returns labels ranked by confidence descending.
type Classifier interface {
	Classify(ctx context.Context, image []byte, filename string) ([]LabelScore, error)
}
