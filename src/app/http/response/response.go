// Package response defines consistent HTTP response structures.
// All API responses should use these types for consistency.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"palpitefc/src/core/domain"
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "INVALID_STATE")
	Code string `json:"code"`

	Message string `json:"message"`

	// Field names the offending input for VALIDATION_ERROR responses.
	Field string `json:"field,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{Data: data})
}

func abort(c *gin.Context, status int, detail ErrorDetail) {
	c.JSON(status, Error{Error: detail})
}

// BadRequest sends a 400 for payloads that cannot be decoded.
func BadRequest(c *gin.Context, message, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: message, RequestID: requestID})
}

// ValidationError sends a 400 naming the rejected field.
func ValidationError(c *gin.Context, field, message, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{Code: "VALIDATION_ERROR", Message: message, Field: field, RequestID: requestID})
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message, requestID string) {
	abort(c, http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: message, RequestID: requestID})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message, requestID string) {
	abort(c, http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: message, RequestID: requestID})
}

// InternalError sends a 500 without leaking the cause.
func InternalError(c *gin.Context, requestID string) {
	abort(c, http.StatusInternalServerError, ErrorDetail{
		Code:      "INTERNAL_ERROR",
		Message:   "An unexpected error occurred",
		RequestID: requestID,
	})
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// Finished attempts answer 409 INVALID_STATE, distinct from insert-only
// CONFLICT on the catalog.
func FromDomainError(c *gin.Context, err error, requestID string) {
	switch {
	case domain.IsNotFound(err):
		abort(c, http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: err.Error(), RequestID: requestID})
	case domain.IsValidationError(err):
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
			return
		}
		BadRequest(c, err.Error(), requestID)
	case domain.IsInvalidState(err):
		abort(c, http.StatusConflict, ErrorDetail{Code: "INVALID_STATE", Message: err.Error(), RequestID: requestID})
	case domain.IsConflict(err):
		abort(c, http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error(), RequestID: requestID})
	case domain.IsForbidden(err):
		Forbidden(c, err.Error(), requestID)
	case domain.IsUnauthorized(err):
		Unauthorized(c, err.Error(), requestID)
	default:
		InternalError(c, requestID)
	}
}
