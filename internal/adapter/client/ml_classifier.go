package client

import (
	"context"

	"github.com/ikondrat/classifier-example/internal/domain/service"
)

// categoryNames maps the model's raw label codes to human-readable categories.
var categoryNames = map[string]string{
	"H":  "Hate Speech",
	"H2": "Hate Speech (Severe)",
	"HR": "Hate Speech (Racial)",
	"OK": "Safe Content",
	"S":  "Sexual Content",
	"S3": "Sexual Content (Explicit)",
	"SH": "Sexual Harassment",
	"V":  "Violence",
	"V2": "Violence (Severe)",
}

// CategoryName returns the human-readable name for a raw model label code.
// Unknown codes pass through unchanged.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}

// MLClassifier adapts MLClient to the Classifier interface
type MLClassifier struct {
	client *MLClient
}

// NewMLClassifier creates a new MLClassifier
func NewMLClassifier(client *MLClient) service.Classifier {
	return &MLClassifier{client: client}
}

// Moderate classifies a single text. The model server returns scores keyed by
// its raw label codes; those are translated to readable category names and the
// top category becomes the result label. Ties break by category name so the
// result is deterministic.
func (c *MLClassifier) Moderate(ctx context.Context, text, requestID string) (*service.ModerationResult, error) {
	resp, err := c.client.Moderate(ctx, text, requestID)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(resp.Scores))
	for code, score := range resp.Scores {
		scores[CategoryName(code)] = score
	}

	var label string
	var best float64
	for name, score := range scores {
		if label == "" || score > best || (score == best && name < label) {
			label = name
			best = score
		}
	}

	return &service.ModerationResult{
		Label:        label,
		Score:        best,
		Scores:       scores,
		ModelVersion: resp.ModelVersion,
	}, nil
}
