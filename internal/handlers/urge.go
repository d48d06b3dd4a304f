package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/domain/stats"
	"github.com/resethq/reset-backend/internal/services"
)

type UrgeHandler struct {
	urgeService services.UrgeService
}

func NewUrgeHandler(urgeService services.UrgeService) *UrgeHandler {
	return &UrgeHandler{urgeService: urgeService}
}

func (uh *UrgeHandler) Log(c *gin.Context) {
	var in struct {
		Timestamp int64  `json:"timestamp"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	ev, err := uh.urgeService.Log(c.Request.Context(), in.Timestamp, in.Reason)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": ev})
}

func (uh *UrgeHandler) List(c *gin.Context) {
	res, err := uh.urgeService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"events":       res.Events,
		"degraded":     res.Degraded,
		"sync_pending": res.SyncPending,
	})
}

func (uh *UrgeHandler) UpdateReason(c *gin.Context) {
	ts, err := strconv.ParseInt(c.Param("timestamp"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	pending, err := uh.urgeService.UpdateReason(c.Request.Context(), ts, in.Reason)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"sync_pending": pending})
}

func (uh *UrgeHandler) Reconcile(c *gin.Context) {
	res, err := uh.urgeService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"synced":       res.Synced,
		"degraded":     res.Degraded,
		"sync_pending": res.SyncPending,
	})
}

func (uh *UrgeHandler) Stats(c *gin.Context) {
	period := stats.Period(c.DefaultQuery("period", string(stats.PeriodWeek)))
	switch period {
	case stats.PeriodDay, stats.PeriodWeek, stats.PeriodMonth, stats.PeriodYear:
	default:
		RespondError(c, http.StatusBadRequest, "invalid_input", apperr.NewValidation("period", "must be day, week, month or year"))
		return
	}
	res, err := uh.urgeService.Stats(c.Request.Context(), period)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, res)
}
