package domain

import "errors"

var (
	// ErrFoodNotFound is returned when no candidate exists at any source
	ErrFoodNotFound = errors.New("food not found")

	// ErrFDCAPIFailure is returned when an FDC API request fails
	ErrFDCAPIFailure = errors.New("FDC API request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrClassifierFailure is returned when the image-classification service fails
	ErrClassifierFailure = errors.New("image classification failed")

	// ErrNoPrediction is returned when the classifier produced no labels for an image
	ErrNoPrediction = errors.New("no food identified in image")

	// ErrPredictionNotFound is returned when a prediction record does not exist
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrNotOwner is returned when a prediction belongs to a different user
	ErrNotOwner = errors.New("prediction belongs to another user")
)
