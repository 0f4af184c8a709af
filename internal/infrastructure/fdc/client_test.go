package fdc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriscan/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", nil)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/foods/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("query"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "25", r.URL.Query().Get("pageSize"))
		assert.Equal(t, datasetFilter, r.URL.Query().Get("dataType"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"totalHits": 2,
			"foods": []map[string]any{
				{"fdcId": 171688, "description": "Apples, raw, with skin"},
				{"fdcId": 171689, "description": "Apple juice"},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	foods, err := client.Search(context.Background(), "apple", 25)

	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Apples, raw, with skin", foods[0]["description"])
	assert.Equal(t, float64(171688), foods[0]["fdcId"])
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"foods": []any{}, "totalHits": 0})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	foods, err := client.Search(context.Background(), "unobtainium", 25)

	require.NoError(t, err)
	assert.Empty(t, foods)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	_, err := client.Search(context.Background(), "apple", 25)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFDCAPIFailure)
}

func TestGetFood_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/food/171688", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("format"))

		json.NewEncoder(w).Encode(map[string]any{
			"fdcId":       171688,
			"description": "Apples, raw, with skin",
			"foodNutrients": []map[string]any{
				{"nutrient": map[string]any{"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 52},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	food, err := client.GetFood(context.Background(), "171688")

	require.NoError(t, err)
	assert.Equal(t, "Apples, raw, with skin", food["description"])
	assert.NotEmpty(t, food["foodNutrients"])
}

func TestGetFood_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	_, err := client.GetFood(context.Background(), "999999")

	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestGetFood_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, nil)
	_, err := client.GetFood(context.Background(), "171688")

	assert.ErrorIs(t, err, domain.ErrFDCAPIFailure)
}
