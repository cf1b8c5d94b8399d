package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/models"
	"careconnect-server/internal/storage"
	"careconnect-server/internal/utils"
)

// allowedDocumentTypes is the MIME allowlist for medical document uploads.
var allowedDocumentTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DocumentHandler handles medical document upload and listing.
type DocumentHandler struct {
	DB       *gorm.DB
	Store    *storage.FileStore
	Log      *zap.Logger
	MaxBytes int64
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(db *gorm.DB, store *storage.FileStore, log *zap.Logger, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{DB: db, Store: store, Log: log, MaxBytes: maxBytes}
}

// UploadDocument stores an uploaded file on disk and records its metadata.
// Multipart form: "document" (the file), "patientId", "description".
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	patientID := c.PostForm("patientId")
	if patientID == "" {
		utils.BadRequest(c, "patientId is required")
		return
	}

	var patient models.User
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			h.Log.Error("upload-document: patient lookup failed", zap.Error(err))
			utils.InternalServerError(c, "Failed to upload document")
		}
		return
	}

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		utils.BadRequest(c, "No file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedDocumentTypes[contentType] {
		utils.BadRequest(c, "Invalid file type. Only JPEG, PNG, GIF, PDF, and Word documents are allowed.")
		return
	}

	// header.Size comes from the client, so enforce the limit on actual bytes.
	data, err := io.ReadAll(io.LimitReader(file, h.MaxBytes+1))
	if err != nil {
		h.Log.Error("upload-document: read failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to upload document")
		return
	}
	if int64(len(data)) > h.MaxBytes {
		utils.BadRequest(c, "File exceeds the upload size limit")
		return
	}

	storedName, path, err := h.Store.Save(data, header.Filename)
	if err != nil {
		h.Log.Error("upload-document: disk write failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to upload document")
		return
	}

	document := models.MedicalDocument{
		PatientID:    patient.ID,
		FileName:     storedName,
		OriginalName: header.Filename,
		FilePath:     path,
		FileType:     contentType,
		FileSize:     int64(len(data)),
		UploadDate:   time.Now(),
		Description:  c.PostForm("description"),
	}
	if err := h.DB.Create(&document).Error; err != nil {
		h.Log.Error("upload-document: insert failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to upload document")
		return
	}

	h.Log.Info("document uploaded",
		zap.String("documentId", document.ID),
		zap.String("patientId", patient.ID),
		zap.Int64("bytes", document.FileSize),
	)
	utils.OK(c, "Document uploaded successfully", gin.H{
		"document": gin.H{
			"id":         document.ID,
			"fileName":   document.OriginalName,
			"uploadDate": document.UploadDate,
		},
	})
}

// GetDocuments lists a patient's documents sorted by upload date descending.
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	patientID := c.Param("patientId")

	var documents []models.MedicalDocument
	err := h.DB.
		Where("patient_id = ?", patientID).
		Order("upload_date DESC").
		Find(&documents).Error
	if err != nil {
		h.Log.Error("documents: query failed", zap.String("patientId", patientID), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch documents")
		return
	}

	utils.OK(c, "", gin.H{"documents": documents})
}
