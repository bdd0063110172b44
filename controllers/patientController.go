package controllers

import (
	"CareConnect/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPatientRoutes registers the patient account surface. Routes after
// the open register/login/reset endpoints require a patient token.
func SetupPatientRoutes(router *gin.Engine, h *handlers.PatientHandler, patientAuth gin.HandlerFunc) {
	group := router.Group("/api/patient")

	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
	group.POST("/forgot-password", h.ForgotPassword)
	group.POST("/reset-password", h.ResetPassword)

	group.GET("/profile", patientAuth, h.Profile)
	group.PUT("/update", patientAuth, h.Update)
	group.POST("/add-health-data", patientAuth, h.AddHealthData)
	group.POST("/bookmark/:id", patientAuth, h.Bookmark)
}
