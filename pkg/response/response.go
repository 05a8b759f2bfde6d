package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Stable error codes returned in the failure envelope. Clients match on these,
// not on messages.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNoToken           = "NO_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeInvalidCredential = "INVALID_CREDENTIALS"
	CodeEmailExists       = "EMAIL_ALREADY_EXISTS"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Error(w http.ResponseWriter, statusCode int, message, code string, details interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Code:    code,
		Error:   details,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", CodeValidation, errors)
}

func Unauthorized(w http.ResponseWriter, message, code string) {
	if message == "" {
		message = "Unauthorized"
	}
	if code == "" {
		code = CodeUnauthorized
	}
	Error(w, http.StatusUnauthorized, message, code, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, CodeForbidden, nil)
}

func NotFound(w http.ResponseWriter, message, code string) {
	if message == "" {
		message = "Resource not found"
	}
	if code == "" {
		code = CodeNotFound
	}
	Error(w, http.StatusNotFound, message, code, nil)
}

func Conflict(w http.ResponseWriter, message, code string) {
	if code == "" {
		code = CodeConflict
	}
	Error(w, http.StatusConflict, message, code, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, CodeInternal, nil)
}
