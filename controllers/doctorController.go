package controllers

import (
	"CareConnect/handlers"

	"github.com/gin-gonic/gin"
)

// SetupDoctorRoutes registers the doctor account surface plus the public
// listing endpoints.
func SetupDoctorRoutes(router *gin.Engine, h *handlers.DoctorHandler, doctorAuth gin.HandlerFunc) {
	group := router.Group("/api/doctor")

	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
	group.POST("/forgot-password", h.ForgotPassword)
	group.POST("/reset-password", h.ResetPassword)

	group.GET("/", h.List)
	group.GET("/doctors", h.GetAll)
	group.GET("/doctors/profile", doctorAuth, h.Profile)
	group.GET("/:id", h.GetByID)

	group.POST("/update", doctorAuth, h.Update)
}
