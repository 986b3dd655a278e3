package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikondrat/classifier-example/internal/usecase"
)

// ModerationHandler handles moderation HTTP requests
type ModerationHandler struct {
	moderationUC usecase.ModerationUsecase
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationUC usecase.ModerationUsecase) *ModerationHandler {
	return &ModerationHandler{moderationUC: moderationUC}
}

// Moderate handles POST /api/v1/moderations
func (h *ModerationHandler) Moderate(c *gin.Context) {
	var input usecase.ModerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.moderationUC.Moderate(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetModeration handles GET /api/v1/moderations/:id
func (h *ModerationHandler) GetModeration(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "moderation id")
		return
	}

	output, err := h.moderationUC.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListModerations handles GET /api/v1/moderations
func (h *ModerationHandler) ListModerations(c *gin.Context) {
	pagination := ParsePagination(c)
	label := c.Query("label")

	output, err := h.moderationUC.List(c.Request.Context(), label, pagination.Limit, pagination.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// DeleteModeration handles DELETE /api/v1/moderations/:id
func (h *ModerationHandler) DeleteModeration(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "moderation id")
		return
	}

	if err := h.moderationUC.Delete(c.Request.Context(), id); err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
