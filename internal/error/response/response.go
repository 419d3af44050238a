package response

import (
	"github.com/gin-gonic/gin"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/internal/error/code"
)

// Error writes the flat {"error": ...} shape the survey frontend
// expects, with the HTTP status derived from the error code table.
func Error(c *gin.Context, errorCode int) {
	c.JSON(code.GetStatus(errorCode), gin.H{"error": code.GetMessage(errorCode)})
}

// ErrorWithMessage writes an error response with a custom message.
func ErrorWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), gin.H{"error": message})
}

// ErrorWithDetails attaches a backend-specific diagnostic code. Callers
// pass an empty details string in production mode to omit it.
func ErrorWithDetails(c *gin.Context, errorCode int, message, details string) {
	body := gin.H{"error": message}
	if details != "" {
		body["details"] = details
	}
	c.JSON(code.GetStatus(errorCode), body)
}
