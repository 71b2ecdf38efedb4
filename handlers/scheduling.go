package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedly/models"
	"schedly/services/scheduling"
	"schedly/utils"
)

// SchedulingHandler exposes the session state machine over HTTP.
type SchedulingHandler struct {
	Svc    scheduling.SessionService
	Logger *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SessionService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Svc: svc, Logger: logger}
}

// OpenSession creates a session for a date range.
func (h *SchedulingHandler) OpenSession(c *gin.Context) {
	var input struct {
		Range models.DateRange `json:"range"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Svc.OpenSession(c.Request.Context(), input.Range)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSession returns the current session state.
func (h *SchedulingHandler) GetSession(c *gin.Context) {
	session, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ChangeRange moves the visible date range.
func (h *SchedulingHandler) ChangeRange(c *gin.Context) {
	var input struct {
		Range models.DateRange `json:"range"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Svc.ChangeRange(c.Request.Context(), c.Param("sessionID"), input.Range)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CloseSession discards a session.
func (h *SchedulingHandler) CloseSession(c *gin.Context) {
	if err := h.Svc.CloseSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

// CreateAppointment adds a booking (locally when the session is in draft mode).
func (h *SchedulingHandler) CreateAppointment(c *gin.Context) {
	var appt models.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Svc.CreateAppointment(c.Request.Context(), c.Param("sessionID"), appt)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateAppointment applies an inline edit.
func (h *SchedulingHandler) UpdateAppointment(c *gin.Context) {
	var appt models.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	appt.ID = c.Param("id")
	session, err := h.Svc.UpdateAppointment(c.Request.Context(), c.Param("sessionID"), appt)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// MoveAppointment handles a drag gesture carrying new start and end times.
func (h *SchedulingHandler) MoveAppointment(c *gin.Context) {
	var input struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Svc.MoveAppointment(c.Request.Context(), c.Param("sessionID"), c.Param("id"), input.StartTime, input.EndTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ResizeAppointment handles a resize gesture carrying a new end time.
func (h *SchedulingHandler) ResizeAppointment(c *gin.Context) {
	var input struct {
		EndTime string `json:"endTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Svc.ResizeAppointment(c.Request.Context(), c.Param("sessionID"), c.Param("id"), input.EndTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteAppointment removes a booking.
func (h *SchedulingHandler) DeleteAppointment(c *gin.Context) {
	session, err := h.Svc.DeleteAppointment(c.Request.Context(), c.Param("sessionID"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Optimize runs the backend optimizer and enters draft mode. The optimizer's
// validity verdict rides along so the client can show a persistent notice.
func (h *SchedulingHandler) Optimize(c *gin.Context) {
	session, isValid, err := h.Svc.EnterDraft(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"isValid": isValid,
	})
}

// Save persists all draft changes and leaves draft mode.
func (h *SchedulingHandler) Save(c *gin.Context) {
	session, err := h.Svc.SaveDraft(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		var sessErr *scheduling.SessionError
		if errors.As(err, &sessErr) && sessErr.Code == scheduling.CodeSaveFailed {
			// Draft state is preserved for a retry.
			c.JSON(http.StatusBadGateway, gin.H{
				"message": "Some changes failed to save. Please try again.",
				"session": session,
			})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Reset discards all draft changes and restores server truth.
func (h *SchedulingHandler) Reset(c *gin.Context) {
	session, err := h.Svc.ResetDraft(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Explain renders the conflict explanation for one appointment.
func (h *SchedulingHandler) Explain(c *gin.Context) {
	explanation, err := h.Svc.ExplainAppointment(c.Request.Context(), c.Param("sessionID"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"explanation": explanation})
}

func (h *SchedulingHandler) respondError(c *gin.Context, err error) {
	var sessErr *scheduling.SessionError
	if errors.As(err, &sessErr) {
		switch sessErr.Code {
		case scheduling.CodeSessionNotFound, scheduling.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, sessErr.Message, "")
			return
		case scheduling.CodeInvalidEvent:
			utils.JSONError(c, http.StatusBadRequest, sessErr.Message, "")
			return
		case scheduling.CodeRemoteFailed:
			utils.JSONError(c, http.StatusBadGateway, "scheduling backend request failed", sessErr.Message)
			return
		}
	}
	h.Logger.Error("session operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}
