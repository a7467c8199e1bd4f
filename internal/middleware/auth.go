package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeol2/8-pumati-be/pkg/token"
)

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID, err := m.tokens.ExtractMemberID(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("member_id", memberID)
		c.Next()
	}
}
