package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/usecase"
)

// NutritionResolver is the slice of the resolution pipeline the handlers
// consume.
type NutritionResolver interface {
	ResolveByName(ctx context.Context, query string) domain.ResolutionResult
	ResolveByBarcode(ctx context.Context, code string) (*domain.FoodRecord, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	resolver    NutritionResolver
	classifier  domain.Classifier
	predictions *usecase.PredictionService
	log         *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(resolver NutritionResolver, classifier domain.Classifier, predictions *usecase.PredictionService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		resolver:    resolver,
		classifier:  classifier,
		predictions: predictions,
		log:         log,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriscan-backend",
		"version": "1.0.0",
	})
}

// SearchByName resolves a free-text food name. The resolution envelope
// is always returned with HTTP 200; its status field carries the outcome.
func (h *Handler) SearchByName(c *gin.Context) {
	name := c.Param("name")
	result := h.resolver.ResolveByName(c.Request.Context(), name)
	c.JSON(http.StatusOK, result)
}

// SearchByBarcode resolves a barcode into at most one record.
func (h *Handler) SearchByBarcode(c *gin.Context) {
	code := c.Param("code")

	record, err := h.resolver.ResolveByBarcode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusOK, domain.ResolutionResult{
			Status:       domain.StatusError,
			Message:      fmt.Sprintf("no product found with barcode: %s", code),
			Alternatives: []domain.FoodRecord{},
		})
		return
	}

	c.JSON(http.StatusOK, domain.ResolutionResult{
		Status:       domain.StatusSuccess,
		Main:         record,
		Alternatives: []domain.FoodRecord{},
	})
}

// IdentifyFromImage classifies an uploaded image and resolves the top
// label. A match with no nutrition data surfaces as status=partial with
// the label and confidence in the message.
func (h *Handler) IdentifyFromImage(c *gin.Context) {
	image, filename, ok := h.readUpload(c)
	if !ok {
		return
	}

	scores, err := h.classifier.Classify(c.Request.Context(), image, filename)
	if err != nil {
		h.log.Warn("classification failed", zap.String("filename", filename), zap.Error(err))
		c.JSON(http.StatusOK, domain.ResolutionResult{
			Status:       domain.StatusError,
			Message:      "could not identify any food in the image",
			Alternatives: []domain.FoodRecord{},
		})
		return
	}

	top := scores[0]
	h.log.Info("food identified",
		zap.String("label", top.Label),
		zap.Float64("confidence", top.Confidence))

	if userID := c.PostForm("user_id"); userID != "" && h.predictions != nil {
		h.predictions.Save(userID, top.Label, top.Confidence, filename)
	}

	result := h.resolver.ResolveByName(c.Request.Context(), top.Label)
	if result.Main == nil {
		c.JSON(http.StatusOK, domain.ResolutionResult{
			Status: domain.StatusPartial,
			Message: fmt.Sprintf("food identified as %q (confidence: %.2f), but no nutrition data was found",
				top.Label, top.Confidence),
			Alternatives: result.Alternatives,
		})
		return
	}

	result.Message = fmt.Sprintf("food identified with %.2f confidence", top.Confidence)
	c.JSON(http.StatusOK, result)
}

// RecognizeImage returns the raw classification envelope without
// touching nutrition data.
func (h *Handler) RecognizeImage(c *gin.Context) {
	image, filename, ok := h.readUpload(c)
	if !ok {
		return
	}

	scores, err := h.classifier.Classify(c.Request.Context(), image, filename)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrNoPrediction) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                  "success",
		"main_prediction":         scores[0],
		"alternative_predictions": scores[1:],
	})
}

// RecognizeAndSave classifies an image and records the top prediction
// for the requesting user.
func (h *Handler) RecognizeAndSave(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "user id is required"})
		return
	}

	image, filename, ok := h.readUpload(c)
	if !ok {
		return
	}

	scores, err := h.classifier.Classify(c.Request.Context(), image, filename)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrNoPrediction) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	top := scores[0]
	prediction := h.predictions.Save(userID, top.Label, top.Confidence, filename)

	c.JSON(http.StatusOK, gin.H{
		"status":                  "success",
		"main_prediction":         top,
		"alternative_predictions": scores[1:],
		"prediction_id":           prediction.ID,
	})
}

// ListPredictions returns a user's prediction history.
func (h *Handler) ListPredictions(c *gin.Context) {
	predictions, err := h.predictions.ListByUser(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "detail": fmt.Sprintf("no predictions found for user %s", c.Param("userId"))})
		return
	}
	c.JSON(http.StatusOK, predictions)
}

// GetPrediction returns one prediction, owner-checked.
func (h *Handler) GetPrediction(c *gin.Context) {
	prediction, err := h.predictions.Get(c.Param("userId"), c.Param("predictionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "detail": "prediction not found for this user"})
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// DeletePrediction removes one prediction, owner-checked.
func (h *Handler) DeletePrediction(c *gin.Context) {
	err := h.predictions.Delete(c.Param("userId"), c.Param("predictionId"))
	switch {
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "detail": "not authorized to delete this prediction"})
	case err != nil:
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "detail": "prediction not found"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success", "detail": "prediction deleted"})
	}
}

// readUpload pulls the multipart image out of the request. On failure it
// writes the error response itself and returns ok=false.
func (h *Handler) readUpload(c *gin.Context) (data []byte, filename string, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "no file provided"})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "could not read uploaded file"})
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "could not read uploaded file"})
		return nil, "", false
	}
	return data, fileHeader.Filename, true
}
