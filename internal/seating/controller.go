package seating

import (
	"net/http"
	"strconv"

	"tablebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSuggestions handles GET /reservations/:id/seating/suggestions?limit=N
func (ctrl *Controller) GetSuggestions(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid limit", nil, err.Error())
			return
		}
	}

	suggestions, err := ctrl.service.Suggest(c.Request.Context(), reservationID, limit)
	if err != nil {
		response.RespondError(c, "Failed to build seating suggestions", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seating suggestions built successfully", suggestions, nil)
}

// AssignTables handles POST /reservations/:id/seating/assignments
func (ctrl *Controller) AssignTables(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	var req AssignTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.AssignTables(c.Request.Context(), reservationID, req.TableIDs)
	if err != nil {
		response.RespondError(c, "Failed to assign tables", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tables assigned successfully", reservation, nil)
}
