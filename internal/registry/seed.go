package registry

import (
	"time"

	"github.com/shohag/airegistry/internal/models"
)

// SeedEndpoints returns the example records written to an empty store.
func SeedEndpoints() []models.Endpoint {
	return []models.Endpoint{
		{
			ID:          "1",
			EndpointID:  "text-generation",
			Method:      models.MethodPost,
			Description: "Generates text based on a prompt",
			URL:         "https://api.example.com/generate",
			Creator:     "John Doe",
			CreatedAt:   time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			EndpointID:  "image-analysis",
			Method:      models.MethodPost,
			Description: "Analyzes images and returns detected objects",
			URL:         "https://api.example.com/analyze-image",
			Creator:     "Jane Smith",
			CreatedAt:   time.Date(2023, time.July, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			EndpointID:  "sentiment-analysis",
			Method:      models.MethodGet,
			Description: "Analyzes the sentiment of provided text",
			URL:         "https://api.example.com/sentiment",
			Creator:     "Alex Johnson",
			CreatedAt:   time.Date(2023, time.August, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}
