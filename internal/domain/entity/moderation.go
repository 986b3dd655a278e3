package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryScores maps human-readable category names to model confidence
// scores in [0,1]. Stored as a JSONB column.
type CategoryScores map[string]float64

// Value implements driver.Valuer for GORM.
func (s CategoryScores) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for GORM.
func (s *CategoryScores) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for CategoryScores: %T", value)
	}
}

// Top returns the highest-scoring category. Ties are broken by the
// lexicographically smaller name so the result is deterministic.
func (s CategoryScores) Top() (string, float64) {
	var label string
	var best float64
	for name, score := range s {
		if label == "" || score > best || (score == best && name < label) {
			label = name
			best = score
		}
	}
	return label, best
}

// SafeCategory is the category name the model assigns to unobjectionable text.
const SafeCategory = "Safe Content"

// ModerationRecord represents a single moderation request and its result
type ModerationRecord struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Text         string         `json:"text" gorm:"type:text;not null"`
	Label        string         `json:"label" gorm:"type:varchar(100)"`
	Score        float64        `json:"score" gorm:"type:decimal(5,4)"`
	Scores       CategoryScores `json:"scores" gorm:"type:jsonb"`
	ModelVersion string         `json:"model_version" gorm:"type:varchar(64)"`
	LatencyMs    int64          `json:"latency_ms" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (ModerationRecord) TableName() string {
	return "moderation_records"
}

// NewModerationRecord creates a new ModerationRecord for the given text
func NewModerationRecord(text string) *ModerationRecord {
	return &ModerationRecord{
		ID:   uuid.New(),
		Text: text,
	}
}

// SetResult sets the classification result on the record
func (r *ModerationRecord) SetResult(label string, score float64, scores CategoryScores, modelVersion string, latencyMs int64) {
	r.Label = label
	r.Score = score
	r.Scores = scores
	r.ModelVersion = modelVersion
	r.LatencyMs = latencyMs
}

// Flagged returns true if the record was classified as anything other
// than safe content.
func (r *ModerationRecord) Flagged() bool {
	return r.Label != "" && r.Label != SafeCategory
}
