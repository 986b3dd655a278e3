package service

import "context"

// ModerationResult represents the result of moderating a single text
type ModerationResult struct {
	Label        string             `json:"label"`
	Score        float64            `json:"score"`
	Scores       map[string]float64 `json:"scores"`
	ModelVersion string             `json:"model_version"`
}

// Classifier defines the interface for the external moderation model.
// The model is loaded once by its provider; implementations only forward
// text and translate the provider's output.
type Classifier interface {
	// Moderate classifies a single text and returns per-category scores
	// along with the top category
	Moderate(ctx context.Context, text, requestID string) (*ModerationResult, error)
}
