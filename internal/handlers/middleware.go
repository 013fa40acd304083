package handlers

import (
	"net/http"
	"strings"

	"stepping_debug/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxScopes = "scopes"

	accessTokenParam = "access_token"
)

// userIdMiddleware authenticates with an "Authorization: Bearer" header or, for clients
// that cannot set headers, an access_token query parameter.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, msg := bearerToken(c)
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	p, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, p.UserID)
	c.Set(ctxScopes, p.Scopes)
	c.Next()
}

func bearerToken(c *gin.Context) (token, errMsg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := strings.TrimSpace(c.Query(accessTokenParam)); q != "" {
			return q, ""
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}

// requireScope rejects requests whose token was not granted scope.
// It must run after userIdMiddleware.
func (h *Handler) requireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := service.Principal{Scopes: c.GetStringSlice(ctxScopes)}
		if !p.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "insufficient scope",
				"required": scope,
			})
			return
		}
		c.Next()
	}
}
