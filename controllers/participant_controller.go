package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/internal/error/code"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/internal/error/response"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/middleware"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services/container"
)

// ParticipantController handles tenant-scoped participant queries
type ParticipantController struct {
	BaseControllerImpl
}

// NewParticipantController creates a new participant controller
func (f *ControllerFactory) NewParticipantController(ctx *gin.Context) *ParticipantController {
	return &ParticipantController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// memberID parses the :id path parameter. Writes the 400 response and
// returns false on garbage input.
func (c *ParticipantController) memberID() (uint, bool) {
	idStr := c.Context.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithMessage(c.Context, code.ErrValidation, "Invalid participant ID")
		return 0, false
	}
	return uint(id), true
}

// Search finds participants by name
// @Summary      Search Participants
// @Description  Case-insensitive name search within the caller's parish, capped at 10 results
// @Tags         Participants
// @Produce      json
// @Param        q query string false "Name fragment, minimum 2 characters"
// @Success      200  {array}   models.ParticipantSummary
// @Failure      500  {object}  map[string]interface{}
// @Router       /search-participants [get]
func (c *ParticipantController) Search() {
	tenant := middleware.TenantFromContext(c.Context)
	query := c.Context.Query("q")

	results, err := c.Container.GetParticipantService().SearchParticipants(c.Context.Request.Context(), tenant, query)
	if err != nil {
		config.Error("participant search failed: %v", err)
		response.ErrorWithMessage(c.Context, code.ErrDatabase, "Search failed")
		return
	}
	c.Context.JSON(http.StatusOK, results)
}

// List returns every participant visible to the caller
// @Summary      List All Participants
// @Description  Full tenant-filtered participant roster
// @Tags         Participants
// @Produce      json
// @Success      200  {array}   models.ParticipantSummary
// @Failure      500  {object}  map[string]interface{}
// @Router       /all-participants [get]
func (c *ParticipantController) List() {
	tenant := middleware.TenantFromContext(c.Context)

	results, err := c.Container.GetParticipantService().ListAllParticipants(c.Context.Request.Context(), tenant)
	if err != nil {
		config.Error("participant list failed: %v", err)
		response.ErrorWithMessage(c.Context, code.ErrDatabase, "Failed to fetch participants")
		return
	}
	c.Context.JSON(http.StatusOK, results)
}

// Detail returns one participant's full household bundle
// @Summary      Get Participant Detail
// @Description  Household, family members, health and socio-economic records for one participant
// @Tags         Participants
// @Produce      json
// @Param        id path int true "Family member ID"
// @Success      200  {object}  models.ParticipantDetail
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /participant/{id} [get]
func (c *ParticipantController) Detail() {
	id, ok := c.memberID()
	if !ok {
		return
	}
	tenant := middleware.TenantFromContext(c.Context)

	detail, err := c.Container.GetParticipantService().GetParticipantDetail(c.Context.Request.Context(), tenant, id)
	if err != nil {
		c.writeParticipantError(err, "Failed to fetch participant details")
		return
	}
	c.Context.JSON(http.StatusOK, detail)
}

// Update applies partial edits to a participant's household records
// @Summary      Update Participant
// @Description  Partial per-entity updates across the participant's household aggregate
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Param        id path int true "Family member ID"
// @Param        request body services.ParticipantUpdate true "Sections to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /participant/{id} [put]
func (c *ParticipantController) Update() {
	id, ok := c.memberID()
	if !ok {
		return
	}
	tenant := middleware.TenantFromContext(c.Context)

	var req services.ParticipantUpdate
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := c.Container.GetParticipantService().UpdateParticipant(c.Context.Request.Context(), tenant, id, &req); err != nil {
		c.writeParticipantError(err, "Failed to update participant")
		return
	}
	c.Context.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Participant updated successfully",
	})
}

// Delete removes a participant
// @Summary      Delete Participant
// @Description  Deletes one family member; the last member takes the whole household with it
// @Tags         Participants
// @Produce      json
// @Param        id path int true "Family member ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /participant/{id} [delete]
func (c *ParticipantController) Delete() {
	id, ok := c.memberID()
	if !ok {
		return
	}
	tenant := middleware.TenantFromContext(c.Context)

	if err := c.Container.GetParticipantService().DeleteParticipant(c.Context.Request.Context(), tenant, id); err != nil {
		c.writeParticipantError(err, "Failed to delete participant")
		return
	}
	c.Context.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Participant deleted successfully",
	})
}

// Parishes lists registered parish accounts
// @Summary      List Parishes
// @Description  Names of all registered parish accounts
// @Tags         Participants
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  map[string]interface{}
// @Router       /parishes [get]
func (c *ParticipantController) Parishes() {
	parishes, err := c.Container.GetAuthService().ListParishes(c.Context.Request.Context())
	if err != nil {
		config.Error("parish list failed: %v", err)
		response.ErrorWithMessage(c.Context, code.ErrDatabase, "Failed to fetch parishes")
		return
	}
	c.Context.JSON(http.StatusOK, parishes)
}

func (c *ParticipantController) writeParticipantError(err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrParticipantNotFound):
		response.Error(c.Context, code.ErrParticipantNotFound)
	case errors.Is(err, services.ErrHouseholdNotFound):
		response.Error(c.Context, code.ErrHouseholdNotFound)
	case errors.Is(err, services.ErrAccessDenied):
		response.Error(c.Context, code.ErrCrossTenantAccess)
	default:
		config.Error("participant request failed: %v", err)
		response.ErrorWithMessage(c.Context, code.ErrUnknown, fallback)
	}
}

// HandleParticipantFunc returns a Gin handler dispatching participant requests
func HandleParticipantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewParticipantController(ctx)

		switch method {
		case "search":
			controller.Search()
		case "list":
			controller.List()
		case "detail":
			controller.Detail()
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		case "parishes":
			controller.Parishes()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method"})
		}
	}
}
