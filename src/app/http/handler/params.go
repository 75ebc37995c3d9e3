package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"palpitefc/src/app/http/dto"
	"palpitefc/src/app/http/response"
	"palpitefc/src/app/middleware"
)

func parseAttemptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.ValidationError(c, "attempt_id", "must be a UUID", middleware.GetRequestID(c))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, err)
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	if field, msg, ok := dto.FieldError(err); ok {
		response.ValidationError(c, field, msg, requestID)
		return
	}
	response.BadRequest(c, "invalid payload", requestID)
}

// respondError attaches err for the logging middleware and maps it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.FromDomainError(c, err, middleware.GetRequestID(c))
}
