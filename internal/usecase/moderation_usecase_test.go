package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ikondrat/classifier-example/internal/domain/entity"
	"github.com/ikondrat/classifier-example/internal/domain/service"
)

// MockModerationRepository is a mock implementation of ModerationRepository
type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) Create(ctx context.Context, record *entity.ModerationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockModerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModerationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ModerationRecord), args.Error(1)
}

func (m *MockModerationRepository) List(ctx context.Context, limit, offset int) ([]*entity.ModerationRecord, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ModerationRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockModerationRepository) GetByLabel(ctx context.Context, label string, limit, offset int) ([]*entity.ModerationRecord, int64, error) {
	args := m.Called(ctx, label, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ModerationRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockModerationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockModerationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockClassifier is a mock implementation of service.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Moderate(ctx context.Context, text, requestID string) (*service.ModerationResult, error) {
	args := m.Called(ctx, text, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ModerationResult), args.Error(1)
}

func TestModerationUsecase_Moderate(t *testing.T) {
	t.Run("success passes label and score through", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(mockRepo, mockClassifier, nil, nil)

		result := &service.ModerationResult{
			Label: "Safe Content",
			Score: 0.98,
			Scores: map[string]float64{
				"Safe Content": 0.98,
				"Violence":     0.01,
			},
			ModelVersion: "koala-v1",
		}
		mockClassifier.On("Moderate", mock.Anything, "I love this product!", mock.AnythingOfType("string")).Return(result, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ModerationRecord")).Return(nil)

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: "I love this product!"})

		assert.NoError(t, err)
		assert.NotNil(t, output)
		assert.Equal(t, "Safe Content", output.Label)
		assert.Equal(t, 0.98, output.Score)
		assert.Equal(t, 0.01, output.Scores["Violence"])
		assert.False(t, output.Flagged)
		assert.Equal(t, "koala-v1", output.ModelVersion)
		assert.NotEqual(t, uuid.Nil, output.RecordID)
		mockClassifier.AssertExpectations(t)
		mockClassifier.AssertNumberOfCalls(t, "Moderate", 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("flagged content", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(nil, mockClassifier, nil, nil)

		result := &service.ModerationResult{
			Label:  "Violence",
			Score:  0.91,
			Scores: map[string]float64{"Violence": 0.91, "Safe Content": 0.05},
		}
		mockClassifier.On("Moderate", mock.Anything, mock.Anything, mock.Anything).Return(result, nil)

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: "I want to hurt you"})

		assert.NoError(t, err)
		assert.True(t, output.Flagged)
		assert.Equal(t, "Violence", output.Label)
	})

	t.Run("empty text never reaches the classifier", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(nil, mockClassifier, nil, nil)

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: ""})

		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Nil(t, output)
		mockClassifier.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only text never reaches the classifier", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(nil, mockClassifier, nil, nil)

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: "   \t\n  "})

		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Nil(t, output)
		mockClassifier.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("classifier error maps to ErrInference", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(nil, mockClassifier, nil, nil)

		mockClassifier.On("Moderate", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("model server returned status 500"))

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: "some text"})

		assert.ErrorIs(t, err, ErrInference)
		assert.Nil(t, output)
	})

	t.Run("repository failure does not fail the request", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(mockRepo, mockClassifier, nil, nil)

		result := &service.ModerationResult{
			Label:  "Safe Content",
			Score:  0.9,
			Scores: map[string]float64{"Safe Content": 0.9},
		}
		mockClassifier.On("Moderate", mock.Anything, mock.Anything, mock.Anything).Return(result, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ModerationRecord")).
			Return(errors.New("database error"))

		output, err := uc.Moderate(context.Background(), &ModerateInput{Text: "hello"})

		assert.NoError(t, err)
		assert.NotNil(t, output)
		assert.Equal(t, "Safe Content", output.Label)
	})

	t.Run("identical input yields identical result", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewModerationUsecase(nil, mockClassifier, nil, nil)

		result := &service.ModerationResult{
			Label:  "Safe Content",
			Score:  0.98,
			Scores: map[string]float64{"Safe Content": 0.98},
		}
		mockClassifier.On("Moderate", mock.Anything, "same text", mock.Anything).Return(result, nil)

		first, err := uc.Moderate(context.Background(), &ModerateInput{Text: "same text"})
		assert.NoError(t, err)
		second, err := uc.Moderate(context.Background(), &ModerateInput{Text: "same text"})
		assert.NoError(t, err)

		assert.Equal(t, first.Label, second.Label)
		assert.Equal(t, first.Score, second.Score)
	})
}

func TestModerationUsecase_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		recordID := uuid.New()
		record := &entity.ModerationRecord{
			ID:    recordID,
			Text:  "hello",
			Label: "Safe Content",
			Score: 0.95,
		}
		mockRepo.On("GetByID", mock.Anything, recordID).Return(record, nil)

		output, err := uc.GetByID(context.Background(), recordID)

		assert.NoError(t, err)
		assert.NotNil(t, output)
		assert.Equal(t, recordID, output.RecordID)
		assert.Equal(t, "Safe Content", output.Label)
		assert.False(t, output.Flagged)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		recordID := uuid.New()
		mockRepo.On("GetByID", mock.Anything, recordID).Return(nil, nil)

		output, err := uc.GetByID(context.Background(), recordID)

		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Nil(t, output)
	})

	t.Run("history disabled", func(t *testing.T) {
		uc := NewModerationUsecase(nil, nil, nil, nil)

		output, err := uc.GetByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Nil(t, output)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		recordID := uuid.New()
		expectedErr := errors.New("database error")
		mockRepo.On("GetByID", mock.Anything, recordID).Return(nil, expectedErr)

		output, err := uc.GetByID(context.Background(), recordID)

		assert.Error(t, err)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, output)
	})
}

func TestModerationUsecase_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		records := []*entity.ModerationRecord{
			{ID: uuid.New(), Label: "Safe Content", Score: 0.9},
			{ID: uuid.New(), Label: "Violence", Score: 0.8},
		}
		mockRepo.On("List", mock.Anything, 20, 0).Return(records, int64(2), nil)

		output, err := uc.List(context.Background(), "", 20, 0)

		assert.NoError(t, err)
		assert.Len(t, output.Records, 2)
		assert.Equal(t, int64(2), output.Total)
		assert.False(t, output.HasMore)
	})

	t.Run("filters by label", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		records := []*entity.ModerationRecord{
			{ID: uuid.New(), Label: "Violence", Score: 0.8},
		}
		mockRepo.On("GetByLabel", mock.Anything, "Violence", 20, 0).Return(records, int64(1), nil)

		output, err := uc.List(context.Background(), "Violence", 20, 0)

		assert.NoError(t, err)
		assert.Len(t, output.Records, 1)
		assert.Equal(t, "Violence", output.Records[0].Label)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("default limit when zero", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		mockRepo.On("List", mock.Anything, 20, 0).Return([]*entity.ModerationRecord{}, int64(0), nil)

		output, err := uc.List(context.Background(), "", 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, 20, output.Limit)
	})

	t.Run("cap limit at 100", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		mockRepo.On("List", mock.Anything, 100, 0).Return([]*entity.ModerationRecord{}, int64(0), nil)

		output, err := uc.List(context.Background(), "", 500, 0)

		assert.NoError(t, err)
		assert.Equal(t, 100, output.Limit)
	})

	t.Run("has more", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		records := []*entity.ModerationRecord{{ID: uuid.New()}}
		mockRepo.On("List", mock.Anything, 10, 0).Return(records, int64(50), nil)

		output, err := uc.List(context.Background(), "", 10, 0)

		assert.NoError(t, err)
		assert.True(t, output.HasMore)
	})

	t.Run("history disabled returns empty list", func(t *testing.T) {
		uc := NewModerationUsecase(nil, nil, nil, nil)

		output, err := uc.List(context.Background(), "", 20, 0)

		assert.NoError(t, err)
		assert.Empty(t, output.Records)
		assert.Equal(t, int64(0), output.Total)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		expectedErr := errors.New("database error")
		mockRepo.On("List", mock.Anything, 20, 0).Return(nil, int64(0), expectedErr)

		output, err := uc.List(context.Background(), "", 20, 0)

		assert.Error(t, err)
		assert.Nil(t, output)
	})
}

func TestModerationUsecase_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		recordID := uuid.New()
		record := &entity.ModerationRecord{ID: recordID}
		mockRepo.On("GetByID", mock.Anything, recordID).Return(record, nil)
		mockRepo.On("Delete", mock.Anything, recordID).Return(nil)

		err := uc.Delete(context.Background(), recordID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		recordID := uuid.New()
		mockRepo.On("GetByID", mock.Anything, recordID).Return(nil, nil)

		err := uc.Delete(context.Background(), recordID)

		assert.ErrorIs(t, err, ErrRecordNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestModerationUsecase_Stats(t *testing.T) {
	t.Run("totals from repository", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		mockRepo.On("Count", mock.Anything).Return(int64(42), nil)

		output, err := uc.Stats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(42), output.TotalModerations)
		assert.Empty(t, output.LabelCounts)
	})

	t.Run("no backing stores", func(t *testing.T) {
		uc := NewModerationUsecase(nil, nil, nil, nil)

		output, err := uc.Stats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), output.TotalModerations)
		assert.Empty(t, output.LabelCounts)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockModerationRepository)
		uc := NewModerationUsecase(mockRepo, nil, nil, nil)

		mockRepo.On("Count", mock.Anything).Return(int64(0), errors.New("database error"))

		output, err := uc.Stats(context.Background())

		assert.Error(t, err)
		assert.Nil(t, output)
	})
}

func TestToRecordOutput(t *testing.T) {
	record := &entity.ModerationRecord{
		ID:           uuid.New(),
		Text:         "hello",
		Label:        "Hate Speech",
		Score:        0.87,
		Scores:       entity.CategoryScores{"Hate Speech": 0.87, "Safe Content": 0.1},
		ModelVersion: "koala-v1",
		LatencyMs:    12,
	}

	output := toRecordOutput(record)

	assert.Equal(t, record.ID, output.RecordID)
	assert.Equal(t, "hello", output.Text)
	assert.Equal(t, "Hate Speech", output.Label)
	assert.Equal(t, 0.87, output.Score)
	assert.True(t, output.Flagged)
	assert.Equal(t, "koala-v1", output.ModelVersion)
	assert.Equal(t, int64(12), output.LatencyMs)
}
