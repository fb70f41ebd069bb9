package seating

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatingRoutes(rg *gin.RouterGroup, controller *Controller) {
	reservations := rg.Group("/reservations")
	{
		reservations.GET("/:id/seating/suggestions", controller.GetSuggestions)
		reservations.POST("/:id/seating/assignments", controller.AssignTables)
	}
}
