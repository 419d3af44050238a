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
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

// SurveyController handles household survey submissions
type SurveyController struct {
	BaseControllerImpl
}

// NewSurveyController creates a new survey controller
func (f *ControllerFactory) NewSurveyController(ctx *gin.Context) *SurveyController {
	return &SurveyController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// Submit ingests one household survey
// @Summary      Submit Survey
// @Description  Persists a full household survey (household, members, health, socio-economic) atomically
// @Tags         Survey
// @Accept       json
// @Produce      json
// @Param        request body services.SurveySubmission true "Survey form sections"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /submit-survey [post]
func (c *SurveyController) Submit() {
	var req services.SurveySubmission
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Error(c.Context, code.ErrBind)
		return
	}

	id, err := c.Container.GetSurveyService().SubmitSurvey(c.Context.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSubmission) {
			response.Error(c.Context, code.ErrBind)
			return
		}
		config.Error("survey submission failed: %v", err)

		// Backend error details stay out of production responses.
		details := ""
		if !c.Container.GetConfig().IsProduction() {
			if details = store.BackendCode(err); details == "" {
				details = err.Error()
			}
		}
		response.ErrorWithDetails(c.Context, code.ErrDatabase, "Failed to save survey data", details)
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Survey data saved successfully",
		"id":      id,
	})
}

// HandleSurveyFunc returns a Gin handler dispatching survey requests
func HandleSurveyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewSurveyController(ctx)

		switch method {
		case "submit":
			controller.Submit()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method"})
		}
	}
}
