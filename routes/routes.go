package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/controllers"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/middleware"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services/container"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

var allowedOrigins = []string{
	"http://localhost:3000",
	"https://survey-profiling-tool.vercel.app",
}

// SetupRouter initializes and returns the configured router
func SetupRouter(st store.Store, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range allowedOrigins {
			if strings.EqualFold(origin, allowed) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Username, Cache-Control, Pragma")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// force UTF-8 JSON responses
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(st, cfg, redisClient)

	middleware.InitTenantMiddleware(cfg, serviceContainer.GetJWTService())
	r.Use(middleware.TenantIdentity())

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// health and connectivity
	r.GET("/", controllers.HandleHealthFunc(container, "banner"))
	r.GET("/test", controllers.HandleHealthFunc(container, "test"))
	r.GET("/test-connection", controllers.HandleHealthFunc(container, "testConnection"))

	// auth
	r.POST("/login", controllers.HandleAuthFunc(container, "login"))
	r.GET("/parishes", controllers.HandleParticipantFunc(container, "parishes"))

	// survey ingestion
	r.POST("/submit-survey", controllers.HandleSurveyFunc(container, "submit"))

	// participant queries
	r.GET("/search-participants", controllers.HandleParticipantFunc(container, "search"))
	r.GET("/all-participants", controllers.HandleParticipantFunc(container, "list"))
	r.GET("/participant/:id", controllers.HandleParticipantFunc(container, "detail"))
	r.PUT("/participant/:id", controllers.HandleParticipantFunc(container, "update"))
	r.DELETE("/participant/:id", controllers.HandleParticipantFunc(container, "delete"))
}
