package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {"success": bool,
// "message": string} plus endpoint-specific keys merged in on success.

// OK sends a 200 response with the given payload merged into the envelope.
func OK(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, message, payload)
}

// Created sends a 201 response with the given payload merged into the envelope.
func Created(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusCreated, message, payload)
}

func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail sends an error response.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
}

// BadRequest sends a 400 Bad Request error response (validation failures).
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict error response (duplicate email).
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// InternalServerError sends a 500 response. Callers log the underlying error
// and pass only a generic message here.
func InternalServerError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
