package controllers

import (
	"CareConnect/handlers"

	"github.com/gin-gonic/gin"
)

// SetupImportRoutes registers the destructive fixture-import endpoints.
func SetupImportRoutes(router *gin.Engine, h *handlers.ImportHandler) {
	group := router.Group("/api/import")

	group.POST("/doctors", h.ImportDoctors)
	group.POST("/patients", h.ImportPatients)
}
