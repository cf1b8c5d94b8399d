package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/middleware"
	"careconnect-server/internal/models"
	"careconnect-server/internal/utils"
)

// SessionHandler drives the session state machine:
// waiting -> active -> completed, with cancelled reachable from waiting or
// active. Each transition also advances the paired DoctorRequest.
type SessionHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(db *gorm.DB, log *zap.Logger) *SessionHandler {
	return &SessionHandler{DB: db, Log: log}
}

// loadSession fetches the session and verifies the caller participates in it.
// On failure the response has already been written.
func (h *SessionHandler) loadSession(c *gin.Context) (*models.Session, bool) {
	sessionID := c.Param("sessionId")

	var session models.Session
	if err := h.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Session not found")
		} else {
			h.Log.Error("session lookup failed", zap.String("sessionId", sessionID), zap.Error(err))
			utils.InternalServerError(c, "Failed to fetch session")
		}
		return nil, false
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	isInterpreter := session.InterpreterID != nil && *session.InterpreterID == userID
	if userID != session.PatientID && userID != session.DoctorID && !isInterpreter {
		utils.Forbidden(c, "You are not a participant in this session")
		return nil, false
	}

	return &session, true
}

// ActivateSessionRequest represents the optional request body for activation.
type ActivateSessionRequest struct {
	InterpreterID string `json:"interpreterId" binding:"omitempty,uuid"`
}

// ActivateSession moves a waiting session to active, optionally attaching an
// interpreter, and marks the underlying request active.
func (h *SessionHandler) ActivateSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req ActivateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.InterpreterID != "" {
		var interpreter models.User
		if err := h.DB.First(&interpreter, "id = ? AND role = ?", req.InterpreterID, models.RoleInterpreter).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Interpreter not found")
			} else {
				h.Log.Error("session activate: interpreter lookup failed", zap.Error(err))
				utils.InternalServerError(c, "Failed to update session")
			}
			return
		}
		session.InterpreterID = &interpreter.ID
	}

	if err := session.Activate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return tx.Model(&models.DoctorRequest{}).
			Where("id = ?", session.RequestID).
			Update("status", models.RequestActive).Error
	})
	if err != nil {
		h.Log.Error("session activate failed", zap.String("sessionId", session.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to update session")
		return
	}

	h.Log.Info("session activated", zap.String("sessionId", session.ID))
	utils.OK(c, "Session activated", gin.H{"session": session})
}

// CompleteSessionRequest represents the optional request body for completion.
type CompleteSessionRequest struct {
	Notes string `json:"notes"`
}

// CompleteSession ends an active session, recording end time and duration,
// and completes the underlying request.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	now := time.Now()
	if err := session.Complete(req.Notes, now); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return tx.Model(&models.DoctorRequest{}).
			Where("id = ?", session.RequestID).
			Updates(map[string]interface{}{
				"status":         models.RequestCompleted,
				"completed_date": now,
				"session_notes":  session.Notes,
			}).Error
	})
	if err != nil {
		h.Log.Error("session complete failed", zap.String("sessionId", session.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to update session")
		return
	}

	h.Log.Info("session completed",
		zap.String("sessionId", session.ID),
		zap.Int("durationMinutes", session.Duration),
	)
	utils.OK(c, "Session completed", gin.H{"session": session})
}

// CancelSession aborts a waiting or active session and cancels the
// underlying request.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := session.Cancel(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return tx.Model(&models.DoctorRequest{}).
			Where("id = ?", session.RequestID).
			Update("status", models.RequestCancelled).Error
	})
	if err != nil {
		h.Log.Error("session cancel failed", zap.String("sessionId", session.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to update session")
		return
	}

	h.Log.Info("session cancelled", zap.String("sessionId", session.ID))
	utils.OK(c, "Session cancelled", gin.H{"session": session})
}

// GetSessionsForUser lists sessions the user participates in, newest first.
func (h *SessionHandler) GetSessionsForUser(c *gin.Context) {
	userID := c.Param("userId")

	var sessions []models.Session
	err := h.DB.
		Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		h.Log.Error("sessions: query failed", zap.String("userId", userID), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch sessions")
		return
	}

	utils.OK(c, "", gin.H{"sessions": sessions})
}
