package holds

import (
	"net/http"

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

// CreateHold handles POST /holds
func (ctrl *Controller) CreateHold(c *gin.Context) {
	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hold, err := ctrl.service.CreateHold(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, "Failed to create hold", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Hold created successfully", hold, nil)
}

// CancelHold handles DELETE /holds/:id
func (ctrl *Controller) CancelHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hold ID", nil, err.Error())
		return
	}

	hold, err := ctrl.service.CancelHold(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, "Failed to cancel hold", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hold cancelled successfully", hold, nil)
}
