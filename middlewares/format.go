package middlewares

import (
	"CareConnect/apperr"
	"log"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// RespondError maps a classified error to its HTTP status and writes the
// shared {message, error} body. This is the single error boundary.
func RespondError(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	message := apperr.MessageOf(err)
	log.Printf("HTTP %d - %s: %v", status, message, err)
	body := gin.H{"message": message}
	if cause := errCause(err); cause != "" && cause != message {
		body["error"] = cause
	}
	c.JSON(status, body)
}

func errCause(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
