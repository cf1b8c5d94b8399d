package models

import (
	"time"
)

// MedicalDocument is the metadata record for a file stored on disk.
type MedicalDocument struct {
	BaseModel
	PatientID    string    `gorm:"size:36;index;not null" json:"patientId"`
	FileName     string    `gorm:"size:255;not null" json:"fileName"`     // Stored name on disk
	OriginalName string    `gorm:"size:255;not null" json:"originalName"` // Name as uploaded
	FilePath     string    `gorm:"size:512;not null" json:"filePath"`
	FileType     string    `gorm:"size:100;not null" json:"fileType"` // MIME type
	FileSize     int64     `gorm:"not null" json:"fileSize"`
	UploadDate   time.Time `gorm:"index" json:"uploadDate"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
