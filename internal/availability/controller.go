package availability

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

// GetDayAvailability handles GET /venues/:id/availability?date=YYYY-MM-DD
func (ctrl *Controller) GetDayAvailability(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	date := c.Query("date")
	if date == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Missing required query parameter: date", nil, nil)
		return
	}

	day, err := ctrl.service.EvaluateDay(c.Request.Context(), venueID, date)
	if err != nil {
		response.RespondError(c, "Failed to evaluate availability", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Availability evaluated successfully", day, nil)
}
