package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resethq/reset-backend/internal/services"
)

type StreakHandler struct {
	streakService services.StreakService
}

func NewStreakHandler(streakService services.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (sh *StreakHandler) Status(c *gin.Context) {
	status, err := sh.streakService.Status(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak": status})
}

func (sh *StreakHandler) Reset(c *gin.Context) {
	status, err := sh.streakService.Reset(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak": status})
}

func (sh *StreakHandler) SetSoberSince(c *gin.Context) {
	var in struct {
		SoberSince time.Time `json:"sober_since"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	status, err := sh.streakService.SetSoberSince(c.Request.Context(), in.SoberSince)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak": status})
}
