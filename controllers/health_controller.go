package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/services/container"
)

// HealthController serves the API banner and connectivity probes
type HealthController struct {
	BaseControllerImpl
}

// NewHealthController creates a new health controller
func (f *ControllerFactory) NewHealthController(ctx *gin.Context) *HealthController {
	return &HealthController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// Banner API root banner
// @Summary      API Banner
// @Description  Returns service name, status and version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (c *HealthController) Banner() {
	c.Context.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Survey Profiling API",
		"status":  "Online",
		"version": "1.0",
	})
}

// Test liveness endpoint
// @Summary      Liveness Check
// @Description  Confirms the server process is responding
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /test [get]
func (c *HealthController) Test() {
	c.Context.JSON(http.StatusOK, gin.H{
		"message":   "Server is working!",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// TestConnection storage connectivity probe
// @Summary      Storage Connectivity Check
// @Description  Pings the storage backend and counts registered parish accounts
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /test-connection [get]
func (c *HealthController) TestConnection() {
	ctx := c.Context.Request.Context()

	if err := c.Container.GetStore().Ping(ctx); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}

	parishes, err := c.Container.GetAuthService().ListParishes(ctx)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"message":       "Database connection successful",
		"parishesCount": len(parishes),
	})
}

// HandleHealthFunc returns a Gin handler dispatching health requests
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewHealthController(ctx)

		switch method {
		case "banner":
			controller.Banner()
		case "test":
			controller.Test()
		case "testConnection":
			controller.TestConnection()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method"})
		}
	}
}
