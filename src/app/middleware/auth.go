package middleware

import (
	"crypto/subtle"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"palpitefc/src/app/http/response"
	"palpitefc/src/core/ports"
)

const (
	userIDHeader     = "X-User-Id"
	adminTokenHeader = "X-Admin-Token"

	// UserIDKey is the context key holding the authenticated player id.
	UserIDKey = "user_id"
)

// SessionAuth identifies the player from an "Authorization: Bearer" token.
// With allowUserHeader set, a bare X-User-Id header is accepted instead;
// that mode exists for local development only.
func SessionAuth(authn ports.Authenticator, allowUserHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if authn == nil {
				response.Unauthorized(c, "bearer tokens are not accepted", requestID)
				c.Abort()
				return
			}
			userID, err := authn.Authenticate(c.Request.Context(), token)
			if err != nil {
				response.FromDomainError(c, err, requestID)
				c.Abort()
				return
			}
			c.Set(UserIDKey, userID)
			c.Next()
			return
		}

		if !allowUserHeader {
			response.Unauthorized(c, "missing bearer token", requestID)
			c.Abort()
			return
		}

		userIDStr := c.GetHeader(userIDHeader)
		if userIDStr == "" {
			response.Unauthorized(c, "missing X-User-Id header", requestID)
			c.Abort()
			return
		}
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			response.BadRequest(c, "invalid X-User-Id", requestID)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID returns the player id stored by SessionAuth.
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}

// AdminAuth guards the catalog API with a shared token. An empty configured
// token disables the API entirely.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		if token == "" {
			response.Forbidden(c, "admin API is disabled", requestID)
			c.Abort()
			return
		}
		given := c.GetHeader(adminTokenHeader)
		if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			response.Unauthorized(c, "invalid admin token", requestID)
			c.Abort()
			return
		}

		c.Next()
	}
}
