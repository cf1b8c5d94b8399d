package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/assignment"
	"careconnect-server/internal/models"
	"careconnect-server/internal/utils"
)

// RequestHandler handles doctor request intake and the doctor-side queue.
type RequestHandler struct {
	DB       *gorm.DB
	Selector *assignment.Selector
	Log      *zap.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(db *gorm.DB, selector *assignment.Selector, log *zap.Logger) *RequestHandler {
	return &RequestHandler{DB: db, Selector: selector, Log: log}
}

// RequestDoctorRequest represents the request body for requesting a doctor.
type RequestDoctorRequest struct {
	PatientID   string `json:"patientId" binding:"required"`
	RequestType string `json:"requestType" binding:"omitempty,oneof=normal urgent emergency"`
	Description string `json:"description"`
}

// RequestDoctor creates a pending doctor request and tries to assign a
// doctor immediately. Assignment failure is not an error: the request stays
// queued and is reported back as pending.
func (h *RequestHandler) RequestDoctor(c *gin.Context) {
	var req RequestDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// The store has no foreign-key constraint on patient_id, so check here.
	var patient models.User
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			h.Log.Error("request-doctor: patient lookup failed", zap.Error(err))
			utils.InternalServerError(c, "Failed to submit request")
		}
		return
	}

	requestType := models.RequestTypeNormal
	if req.RequestType != "" {
		requestType = models.RequestType(req.RequestType)
	}

	request := models.DoctorRequest{
		PatientID:   patient.ID,
		RequestType: requestType,
		Status:      models.RequestPending,
		Description: req.Description,
		RequestDate: time.Now(),
	}
	if err := h.DB.Create(&request).Error; err != nil {
		h.Log.Error("request-doctor: insert failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to submit request")
		return
	}

	doctor, _, err := h.Selector.Assign(&request)
	if err != nil {
		if !errors.Is(err, assignment.ErrNoDoctorsAvailable) {
			h.Log.Error("request-doctor: assignment failed",
				zap.String("requestId", request.ID), zap.Error(err))
		}
		utils.OK(c, "Doctor request submitted and queued", gin.H{
			"request": gin.H{
				"id":     request.ID,
				"status": models.RequestPending,
			},
		})
		return
	}

	utils.OK(c, "Doctor request submitted and assigned successfully", gin.H{
		"request": gin.H{
			"id":     request.ID,
			"status": models.RequestAssigned,
			"assignedDoctor": gin.H{
				"id":             doctor.ID,
				"name":           doctor.FullName,
				"specialization": doctor.Professional.Specialization,
			},
		},
	})
}

// GetDoctorRequests lists the queue a doctor sees: every pending request plus
// the ones assigned to or active with this doctor, newest first.
func (h *RequestHandler) GetDoctorRequests(c *gin.Context) {
	doctorID := c.Param("doctorId")

	var requests []models.DoctorRequest
	err := h.DB.Preload("Patient").
		Where("status = ?", models.RequestPending).
		Or("doctor_id = ? AND status IN ?", doctorID,
			[]models.RequestStatus{models.RequestAssigned, models.RequestActive}).
		Order("request_date DESC").
		Find(&requests).Error
	if err != nil {
		h.Log.Error("doctor-requests: query failed", zap.String("doctorId", doctorID), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch requests")
		return
	}

	utils.OK(c, "", gin.H{"requests": requests})
}
