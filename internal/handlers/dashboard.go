package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/models"
	"careconnect-server/internal/utils"
)

// DashboardHandler serves the role-specific dashboard aggregates.
type DashboardHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{DB: db, Log: log}
}

// GetDashboard handles fetching dashboard counts for a user.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := c.Param("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			h.Log.Error("dashboard: user lookup failed", zap.Error(err))
			utils.InternalServerError(c, "Failed to fetch dashboard data")
		}
		return
	}

	var firstErr error
	count := func(q *gorm.DB) int64 {
		var n int64
		if err := q.Count(&n).Error; err != nil && firstErr == nil {
			firstErr = err
		}
		return n
	}

	data := gin.H{}
	switch user.Role {
	case models.RolePatient:
		openStatuses := []models.RequestStatus{models.RequestPending, models.RequestAssigned}
		data = gin.H{
			"onlineDoctors": count(h.DB.Model(&models.User{}).
				Where("role = ? AND is_online = ?", models.RoleDoctor, true)),
			"myRequests": count(h.DB.Model(&models.DoctorRequest{}).
				Where("patient_id = ? AND status IN ?", user.ID, openStatuses)),
			"activeSessions": count(h.DB.Model(&models.Session{}).
				Where("patient_id = ? AND status = ?", user.ID, models.SessionActive)),
			"connectionStatus": "Ready",
			"emergencyStatus":  "Normal",
		}
	case models.RoleDoctor:
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		openStatuses := []models.RequestStatus{models.RequestPending, models.RequestAssigned}
		data = gin.H{
			"pendingRequests": count(h.DB.Model(&models.DoctorRequest{}).
				Where("status = ? OR (doctor_id = ? AND status = ?)",
					models.RequestPending, user.ID, models.RequestAssigned)),
			"emergencyAlerts": count(h.DB.Model(&models.DoctorRequest{}).
				Where("request_type = ? AND status IN ?", models.RequestTypeEmergency, openStatuses)),
			"activeSessions": count(h.DB.Model(&models.Session{}).
				Where("doctor_id = ? AND status = ?", user.ID, models.SessionActive)),
			"patientsHelpedToday": count(h.DB.Model(&models.Session{}).
				Where("doctor_id = ? AND status = ? AND start_time >= ?",
					user.ID, models.SessionCompleted, startOfDay)),
			"professional": user.Professional,
		}
	}

	if firstErr != nil {
		h.Log.Error("dashboard: count query failed", zap.String("userId", user.ID), zap.Error(firstErr))
		utils.InternalServerError(c, "Failed to fetch dashboard data")
		return
	}

	utils.OK(c, "", gin.H{
		"data": data,
		"user": gin.H{
			"id":           user.ID,
			"name":         user.FullName,
			"role":         user.Role,
			"professional": user.Professional,
		},
	})
}
