package models

import (
	"fmt"
	"time"
)

// SessionStatus represents the status of a communication session
type SessionStatus string

const (
	SessionWaiting   SessionStatus = "waiting"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session represents the communication session between a patient and their
// assigned doctor. Exactly one session exists per assigned DoctorRequest.
type Session struct {
	BaseModel
	PatientID     string        `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID      string        `gorm:"size:36;index;not null" json:"doctorId"`
	InterpreterID *string       `gorm:"size:36" json:"interpreterId,omitempty"`
	RequestID     string        `gorm:"size:36;uniqueIndex;not null" json:"requestId"`
	Status        SessionStatus `gorm:"size:20;default:'waiting'" json:"status"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       *time.Time    `json:"endTime,omitempty"`
	Duration      int           `json:"duration,omitempty"` // minutes
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// Activate moves a waiting session to active.
func (s *Session) Activate() error {
	if s.Status != SessionWaiting {
		return fmt.Errorf("session is %s, only waiting sessions can be activated", s.Status)
	}
	s.Status = SessionActive
	return nil
}

// Complete ends an active session at the given time, recording the end time
// and the duration in whole minutes.
func (s *Session) Complete(notes string, at time.Time) error {
	if s.Status != SessionActive {
		return fmt.Errorf("session is %s, only active sessions can be completed", s.Status)
	}
	s.Status = SessionCompleted
	s.EndTime = &at
	s.Duration = int(at.Sub(s.StartTime).Minutes())
	if notes != "" {
		s.Notes = notes
	}
	return nil
}

// Cancel aborts a session that has not completed yet.
func (s *Session) Cancel() error {
	if s.Status != SessionWaiting && s.Status != SessionActive {
		return fmt.Errorf("session is %s and can no longer be cancelled", s.Status)
	}
	s.Status = SessionCancelled
	return nil
}
