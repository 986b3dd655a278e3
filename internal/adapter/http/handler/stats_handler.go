package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikondrat/classifier-example/internal/adapter/http/middleware"
	"github.com/ikondrat/classifier-example/internal/usecase"
)

// StatsHandler handles the aggregate statistics endpoint
type StatsHandler struct {
	moderationUC usecase.ModerationUsecase
	tracker      *middleware.RateTracker
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(moderationUC usecase.ModerationUsecase, tracker *middleware.RateTracker) *StatsHandler {
	return &StatsHandler{
		moderationUC: moderationUC,
		tracker:      tracker,
	}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.moderationUC.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	data := map[string]interface{}{
		"total_moderations": stats.TotalModerations,
		"label_counts":      stats.LabelCounts,
	}
	if h.tracker != nil {
		data["requests_per_second"] = h.tracker.Rate()
	}

	respondSuccess(c, http.StatusOK, data)
}
