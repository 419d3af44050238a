package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

// ServiceContainer manages dependency injection for all services
type ServiceContainer struct {
	store  store.Store
	config *config.Config
	redis  *redis.Client

	// base services
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// business services
	authService        services.InterfaceAuthService
	surveyService      services.InterfaceSurveyService
	participantService services.InterfaceParticipantService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(st store.Store, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if st == nil {
		panic("store is nil")
	}

	if cfg == nil {
		panic("config is nil")
	}

	// probe the Redis connection up front
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			config.Warning("Redis ping failed: %v, continuing without cache", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		store:  st,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices wires up all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config, c.redis)

	c.authService = services.NewAuthService(c.store, c.config, c.jwtService, c.redisService)
	c.surveyService = services.NewSurveyService(c.store, c.config)
	c.participantService = services.NewParticipantService(c.store, c.config)
}

// GetService returns the service registered under the given name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "store":
		return c.store
	case "redis":
		return c.redis
	case "jwt":
		return c.jwtService
	case "redis_cache":
		return c.redisService
	case "auth":
		return c.authService
	case "survey":
		return c.surveyService
	case "participant":
		return c.participantService
	default:
		return nil
	}
}

// GetStore returns the backing store
func (c *ServiceContainer) GetStore() store.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetJWTService returns the JWT service
func (c *ServiceContainer) GetJWTService() services.InterfaceJWTService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jwtService
}

// GetAuthService returns the auth service
func (c *ServiceContainer) GetAuthService() services.InterfaceAuthService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authService
}

// GetSurveyService returns the survey service
func (c *ServiceContainer) GetSurveyService() services.InterfaceSurveyService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surveyService
}

// GetParticipantService returns the participant service
func (c *ServiceContainer) GetParticipantService() services.InterfaceParticipantService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.participantService
}
