package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "teamboard.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a usecase error onto an HTTP response. Bare sentinel
// errors get their canonical status; anything unrecognized is a 500.
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*domainerrors.AppError); ok {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	switch err {
	case domainerrors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case domainerrors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case domainerrors.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case domainerrors.ErrUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case domainerrors.ErrNotTeamMember:
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this team"})
	case domainerrors.ErrInsufficientRole:
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	case domainerrors.ErrUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
