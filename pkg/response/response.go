package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
)

// GetMemberID retrieves the authenticated member id from the context
func GetMemberID(c *gin.Context) (uint, error) {
	memberID, exists := c.Get("member_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	id, ok := memberID.(uint)
	if !ok {
		return 0, apperror.ErrUnauthorized
	}

	return id, nil
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
