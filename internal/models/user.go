package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RolePatient     Role = "patient"
	RoleDoctor      Role = "doctor"
	RoleNurse       Role = "nurse"
	RoleInterpreter Role = "interpreter"
)

// EmergencyContact is the contact person recorded for patient accounts.
type EmergencyContact struct {
	Name         string `gorm:"size:100" json:"name,omitempty"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
	Relationship string `gorm:"size:50" json:"relationship,omitempty"`
}

// Professional holds the credentials recorded for doctor and nurse accounts.
type Professional struct {
	LicenseNumber  string `gorm:"size:50" json:"licenseNumber,omitempty"`
	Specialization string `gorm:"size:100" json:"specialization,omitempty"`
	Hospital       string `gorm:"size:150" json:"hospital,omitempty"`
}

// User represents a user in the system. Presence (IsOnline/LastSeen) is
// mutated only by login and logout.
type User struct {
	BaseModel
	FullName string    `gorm:"size:100;not null" json:"fullName"`
	Email    string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role     Role      `gorm:"size:20;default:'patient'" json:"role"`
	Phone    string    `gorm:"size:30" json:"phone,omitempty"`
	IsOnline bool      `gorm:"default:false" json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`

	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	Professional     Professional     `gorm:"embedded;embeddedPrefix:professional_" json:"professional"`

	// Relations (not always preloaded)
	Requests  []DoctorRequest   `gorm:"foreignKey:PatientID" json:"-"`
	Documents []MedicalDocument `gorm:"foreignKey:PatientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID               string           `json:"id"`
	FullName         string           `json:"fullName"`
	Email            string           `json:"email"`
	Role             Role             `json:"role"`
	Phone            string           `json:"phone,omitempty"`
	IsOnline         bool             `json:"isOnline"`
	LastSeen         time.Time        `json:"lastSeen"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Professional     Professional     `json:"professional"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:               u.ID,
		FullName:         u.FullName,
		Email:            u.Email,
		Role:             u.Role,
		Phone:            u.Phone,
		IsOnline:         u.IsOnline,
		LastSeen:         u.LastSeen,
		EmergencyContact: u.EmergencyContact,
		Professional:     u.Professional,
		CreatedAt:        u.CreatedAt,
	}
}
