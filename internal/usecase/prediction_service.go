package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nutriscan/backend/internal/domain"
)

// PredictionService is the keyed in-memory store of classification
// outcomes: create, list by owner, get, delete. It holds no resolution
// logic.
type PredictionService struct {
	mu     sync.RWMutex
	byID   map[string]domain.Prediction
	byUser map[string][]string
	now    func() time.Time
}

// NewPredictionService creates an empty prediction store.
func NewPredictionService() *PredictionService {
	return &PredictionService{
		byID:   make(map[string]domain.Prediction),
		byUser: make(map[string][]string),
		now:    time.Now,
	}
}

// Save records one classification outcome for a user and returns it with
// its assigned id.
func (s *PredictionService) Save(userID, foodClass string, confidence float64, imageFilename string) domain.Prediction {
	p := domain.Prediction{
		ID:            uuid.NewString(),
		UserID:        userID,
		FoodClass:     foodClass,
		Confidence:    confidence,
		ImageFilename: imageFilename,
		CreatedAt:     s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
	s.byUser[userID] = append(s.byUser[userID], p.ID)
	return p
}

// ListByUser returns the user's predictions in creation order, or
// ErrPredictionNotFound when they have none.
func (s *PredictionService) ListByUser(userID string) ([]domain.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	predictions := make([]domain.Prediction, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			predictions = append(predictions, p)
		}
	}
	if len(predictions) == 0 {
		return nil, domain.ErrPredictionNotFound
	}
	return predictions, nil
}

// Get returns one prediction, owner-checked.
func (s *PredictionService) Get(userID, predictionID string) (domain.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[predictionID]
	if !ok {
		return domain.Prediction{}, domain.ErrPredictionNotFound
	}
	if p.UserID != userID {
		return domain.Prediction{}, domain.ErrNotOwner
	}
	return p, nil
}

// Delete removes one prediction, owner-checked.
func (s *PredictionService) Delete(userID, predictionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[predictionID]
	if !ok {
		return domain.ErrPredictionNotFound
	}
	if p.UserID != userID {
		return domain.ErrNotOwner
	}

	delete(s.byID, predictionID)
	ids := s.byUser[userID]
	for i, id := range ids {
		if id == predictionID {
			s.byUser[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
