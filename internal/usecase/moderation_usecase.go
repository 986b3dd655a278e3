package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ikondrat/classifier-example/internal/domain/entity"
	"github.com/ikondrat/classifier-example/internal/domain/repository"
	"github.com/ikondrat/classifier-example/internal/domain/service"
	"github.com/ikondrat/classifier-example/internal/infrastructure/metrics"
)

// Error definitions for moderation usecase
var (
	ErrRecordNotFound = errors.New("moderation record not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrEmptyText      = errors.New("text must not be empty")
	ErrInference      = errors.New("model inference failed")
)

// labelCountsKey is the Redis hash holding per-label moderation counters
const labelCountsKey = "moderation:label_counts"

// ModerateInput represents the input for moderating a text
type ModerateInput struct {
	Text string `json:"text" binding:"required"`
}

// ModerateOutput represents the result of a moderation request
type ModerateOutput struct {
	RecordID     uuid.UUID          `json:"record_id"`
	Label        string             `json:"label"`
	Score        float64            `json:"score"`
	Scores       map[string]float64 `json:"scores"`
	Flagged      bool               `json:"flagged"`
	ModelVersion string             `json:"model_version"`
	LatencyMs    int64              `json:"latency_ms"`
}

// RecordOutput represents a stored moderation record
type RecordOutput struct {
	RecordID     uuid.UUID          `json:"record_id"`
	Text         string             `json:"text"`
	Label        string             `json:"label"`
	Score        float64            `json:"score"`
	Scores       map[string]float64 `json:"scores"`
	Flagged      bool               `json:"flagged"`
	ModelVersion string             `json:"model_version"`
	LatencyMs    int64              `json:"latency_ms"`
	CreatedAt    string             `json:"created_at"`
}

// RecordListOutput represents a paginated moderation history
type RecordListOutput struct {
	Records []*RecordOutput `json:"records"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	HasMore bool            `json:"has_more"`
}

// StatsOutput represents aggregate moderation statistics
type StatsOutput struct {
	TotalModerations int64            `json:"total_moderations"`
	LabelCounts      map[string]int64 `json:"label_counts"`
}

// ModerationUsecase defines the interface for moderation business logic
type ModerationUsecase interface {
	Moderate(ctx context.Context, input *ModerateInput) (*ModerateOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RecordOutput, error)
	List(ctx context.Context, label string, limit, offset int) (*RecordListOutput, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsOutput, error)
}

type moderationUsecase struct {
	recordRepo repository.ModerationRepository
	classifier service.Classifier
	redis      *redis.Client
	log        *zap.Logger
}

// NewModerationUsecase creates a new moderation usecase. recordRepo and
// redisClient may be nil; history and label counters are then disabled.
func NewModerationUsecase(recordRepo repository.ModerationRepository, classifier service.Classifier, redisClient *redis.Client, log *zap.Logger) ModerationUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &moderationUsecase{
		recordRepo: recordRepo,
		classifier: classifier,
		redis:      redisClient,
		log:        log,
	}
}

func (u *moderationUsecase) Moderate(ctx context.Context, input *ModerateInput) (*ModerateOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyText
	}

	record := entity.NewModerationRecord(input.Text)

	start := time.Now()
	result, err := u.classifier.Moderate(ctx, input.Text, record.ID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	latencyMs := time.Since(start).Milliseconds()

	record.SetResult(result.Label, result.Score, result.Scores, result.ModelVersion, latencyMs)

	metrics.ModerationsTotal.WithLabelValues(result.Label).Inc()

	// History and counters are best-effort side channels; their failure
	// never fails the moderation request.
	if u.recordRepo != nil {
		if err := u.recordRepo.Create(ctx, record); err != nil {
			u.log.Warn("failed to store moderation record",
				zap.String("record_id", record.ID.String()),
				zap.Error(err))
		}
	}
	if u.redis != nil {
		if err := u.redis.HIncrBy(ctx, labelCountsKey, result.Label, 1).Err(); err != nil {
			u.log.Warn("failed to increment label counter",
				zap.String("label", result.Label),
				zap.Error(err))
		}
	}

	return &ModerateOutput{
		RecordID:     record.ID,
		Label:        record.Label,
		Score:        record.Score,
		Scores:       record.Scores,
		Flagged:      record.Flagged(),
		ModelVersion: record.ModelVersion,
		LatencyMs:    record.LatencyMs,
	}, nil
}

func (u *moderationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*RecordOutput, error) {
	if u.recordRepo == nil {
		return nil, ErrRecordNotFound
	}

	record, err := u.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	return toRecordOutput(record), nil
}

func (u *moderationUsecase) List(ctx context.Context, label string, limit, offset int) (*RecordListOutput, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if u.recordRepo == nil {
		return &RecordListOutput{
			Records: []*RecordOutput{},
			Limit:   limit,
			Offset:  offset,
		}, nil
	}

	var (
		records []*entity.ModerationRecord
		total   int64
		err     error
	)
	if label != "" {
		records, total, err = u.recordRepo.GetByLabel(ctx, label, limit, offset)
	} else {
		records, total, err = u.recordRepo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	outputs := make([]*RecordOutput, len(records))
	for i, r := range records {
		outputs[i] = toRecordOutput(r)
	}

	return &RecordListOutput{
		Records: outputs,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}, nil
}

func (u *moderationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if u.recordRepo == nil {
		return ErrRecordNotFound
	}

	record, err := u.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	return u.recordRepo.Delete(ctx, id)
}

func (u *moderationUsecase) Stats(ctx context.Context) (*StatsOutput, error) {
	out := &StatsOutput{
		LabelCounts: map[string]int64{},
	}

	if u.recordRepo != nil {
		total, err := u.recordRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		out.TotalModerations = total
	}

	if u.redis != nil {
		counts, err := u.redis.HGetAll(ctx, labelCountsKey).Result()
		if err != nil {
			u.log.Warn("failed to read label counters", zap.Error(err))
		} else {
			for label, raw := range counts {
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					continue
				}
				out.LabelCounts[label] = n
			}
		}
	}

	return out, nil
}

func toRecordOutput(r *entity.ModerationRecord) *RecordOutput {
	return &RecordOutput{
		RecordID:     r.ID,
		Text:         r.Text,
		Label:        r.Label,
		Score:        r.Score,
		Scores:       r.Scores,
		Flagged:      r.Flagged(),
		ModelVersion: r.ModelVersion,
		LatencyMs:    r.LatencyMs,
		CreatedAt:    r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
