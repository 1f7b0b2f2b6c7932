package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON endpoint answers with
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError carries a stable code and a human-readable message
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeEmptyInput  = "EMPTY_INPUT"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUnavailable = "PREDICTOR_UNAVAILABLE"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

func respond(c *gin.Context, status int, data interface{}, message ...string) {
	resp := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	c.JSON(status, resp)
}

func success(c *gin.Context, data interface{}, message ...string) {
	respond(c, http.StatusOK, data, message...)
}

func created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, data)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now(),
	})
}
