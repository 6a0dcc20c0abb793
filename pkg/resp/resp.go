package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sideorder/sideorder/internal/model"
)

func OK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error maps domain sentinels to status codes; anything else is a 500.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrActiveSessionExists),
		errors.Is(err, model.ErrLastCategory):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
