package holds

import (
	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller) {
	holds := rg.Group("/holds")
	{
		holds.POST("", controller.CreateHold)
		holds.DELETE("/:id", controller.CancelHold)
	}
}
