package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, callerRequired gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(callerRequired)
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/owner", h.ListForOwnedItems)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Decide)
	}
}
