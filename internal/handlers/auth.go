package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/config"
	"careconnect-server/internal/models"
	"careconnect-server/internal/utils"
)

// AuthHandler handles registration, login and presence.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Log: log}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	FullName         string                   `json:"fullName" binding:"required"`
	Email            string                   `json:"email" binding:"required,email"`
	Password         string                   `json:"password" binding:"required,min=6"`
	Role             string                   `json:"role" binding:"required,oneof=patient doctor nurse interpreter"`
	Phone            string                   `json:"phone"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact"`
	Professional     *models.Professional     `json:"professional"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		h.Log.Error("register: email lookup failed", zap.Error(err))
		utils.InternalServerError(c, "Registration failed. Please try again.")
		return
	}

	user := models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Role:     models.Role(req.Role),
		Phone:    strings.TrimSpace(req.Phone),
		LastSeen: time.Now(),
	}

	// Role-specific profile: emergency contact for patients, credentials for
	// doctors and nurses. Anything else in the payload is dropped.
	if user.Role == models.RolePatient && req.EmergencyContact != nil {
		user.EmergencyContact = *req.EmergencyContact
	} else if (user.Role == models.RoleDoctor || user.Role == models.RoleNurse) && req.Professional != nil {
		user.Professional = *req.Professional
	}

	if err := user.SetPassword(req.Password); err != nil {
		h.Log.Error("register: password hashing failed", zap.Error(err))
		utils.InternalServerError(c, "Registration failed. Please try again.")
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		h.Log.Error("register: user insert failed", zap.Error(err))
		utils.InternalServerError(c, "Registration failed. Please try again.")
		return
	}

	h.Log.Info("user registered", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	utils.Created(c, "User registered successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// CheckEmailRequest represents the request body for the email availability check.
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CheckEmail reports whether an email address is still available.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Conflict(c, "Email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		h.Log.Error("check-email: lookup failed", zap.Error(err))
		utils.InternalServerError(c, "Server error")
		return
	}

	utils.OK(c, "Email available", nil)
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, marks the user online and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			h.Log.Error("login: user lookup failed", zap.Error(err))
			utils.InternalServerError(c, "Login failed. Please try again.")
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	now := time.Now()
	if err := h.DB.Model(&user).Updates(map[string]interface{}{
		"is_online": true,
		"last_seen": now,
	}).Error; err != nil {
		h.Log.Error("login: presence update failed", zap.String("userId", user.ID), zap.Error(err))
		utils.InternalServerError(c, "Login failed. Please try again.")
		return
	}

	token, err := utils.GenerateAccessToken(&user, h.Cfg)
	if err != nil {
		h.Log.Error("login: token generation failed", zap.String("userId", user.ID), zap.Error(err))
		utils.InternalServerError(c, "Login failed. Please try again.")
		return
	}

	h.Log.Info("user logged in", zap.String("userId", user.ID))
	utils.OK(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.FullName,
			"email":    user.Email,
			"role":     user.Role,
			"isOnline": true,
		},
	})
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Logout marks the user offline.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res := h.DB.Model(&models.User{}).Where("id = ?", req.UserID).Updates(map[string]interface{}{
		"is_online": false,
		"last_seen": time.Now(),
	})
	if res.Error != nil {
		h.Log.Error("logout: presence update failed", zap.String("userId", req.UserID), zap.Error(res.Error))
		utils.InternalServerError(c, "Logout failed")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	utils.OK(c, "Logged out successfully", nil)
}
