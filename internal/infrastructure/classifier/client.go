// Package classifier is the HTTP client for the image-classification
// service. The service is a black box: image bytes in, ranked labels
// out. Nothing here interprets the labels.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nutriscan/backend/internal/domain"
)

// Client posts images to the recognition service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// NewClient creates a classifier client for the service at baseURL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		log:        log,
	}
}

// predictResponse tolerates the two envelope shapes the recognition
// service has emitted: a ranked predictions list, or a single top
// prediction object.
type predictResponse struct {
	Predictions []predictionItem `json:"predictions"`
	Prediction  *predictionItem  `json:"prediction"`
}

type predictionItem struct {
	Class      string  `json:"class"`
	Label      string  `json:"label"`
	FoodClass  string  `json:"food_class"`
	Confidence float64 `json:"confidence"`
}

func (p predictionItem) label() string {
	switch {
	case p.FoodClass != "":
		return p.FoodClass
	case p.Class != "":
		return p.Class
	default:
		return p.Label
	}
}

// Classify sends image bytes and returns labels sorted by confidence
// descending. An empty label list maps to ErrNoPrediction.
func (c *Client) Classify(ctx context.Context, image []byte, filename string) ([]domain.LabelScore, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v1/image/predict", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassifierFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warn("classifier error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrClassifierFailure, resp.StatusCode)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	items := decoded.Predictions
	if len(items) == 0 && decoded.Prediction != nil {
		items = []predictionItem{*decoded.Prediction}
	}

	scores := make([]domain.LabelScore, 0, len(items))
	for _, item := range items {
		if item.label() == "" {
			continue
		}
		scores = append(scores, domain.LabelScore{Label: item.label(), Confidence: item.Confidence})
	}
	if len(scores) == 0 {
		return nil, domain.ErrNoPrediction
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores, nil
}
