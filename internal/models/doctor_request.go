package models

import (
	"time"
)

// RequestType represents the urgency tier of a doctor request
type RequestType string

const (
	RequestTypeNormal    RequestType = "normal"
	RequestTypeUrgent    RequestType = "urgent"
	RequestTypeEmergency RequestType = "emergency"
)

// RequestStatus represents the status of a doctor request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAssigned  RequestStatus = "assigned"
	RequestActive    RequestStatus = "active"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// DoctorRequest represents a patient's ask for doctor assistance.
// DoctorID is set exactly when the request reaches assigned status or later.
type DoctorRequest struct {
	BaseModel
	PatientID     string        `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID      *string       `gorm:"size:36;index" json:"doctorId"`
	RequestType   RequestType   `gorm:"size:20;default:'normal'" json:"requestType"`
	Status        RequestStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	RequestDate   time.Time     `json:"requestDate"`
	AssignedDate  *time.Time    `json:"assignedDate,omitempty"`
	CompletedDate *time.Time    `json:"completedDate,omitempty"`
	SessionNotes  string        `gorm:"type:text" json:"sessionNotes,omitempty"`

	// Relations
	Patient User  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}
