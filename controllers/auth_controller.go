package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/internal/error/code"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/internal/error/response"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services/container"
)

// AuthController handles parish account login
type AuthController struct {
	BaseControllerImpl
}

// NewAuthController creates a new auth controller
func (f *ControllerFactory) NewAuthController(ctx *gin.Context) *AuthController {
	return &AuthController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a parish account
// @Summary      Parish Login
// @Description  Verifies parish credentials and returns the derived role and a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMessage(c.Context, code.ErrValidation, "Username and password are required")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.ErrorWithMessage(c.Context, code.ErrValidation, "Username and password are required")
		return
	}

	user, role, token, err := c.Container.GetAuthService().Login(c.Context.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(c.Context, code.ErrUserPasswordIncorrect)
			return
		}
		config.Error("login failed for %q: %v", req.Username, err)
		response.ErrorWithMessage(c.Context, code.ErrUnknown, "Login failed")
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"username": user.Username,
			"role":     role,
		},
		"token": token,
	})
}

// HandleAuthFunc returns a Gin handler dispatching auth requests
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAuthController(ctx)

		switch method {
		case "login":
			controller.Login()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method"})
		}
	}
}
