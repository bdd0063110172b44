package controllers

import (
	"CareConnect/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAppointmentRoutes registers the booking workflow. Booking and the
// patient-facing listings need a patient token; accept/cancel and the
// doctor listings need a doctor token. The reminder trigger is left open
// for the external scheduler.
func SetupAppointmentRoutes(router *gin.Engine, h *handlers.AppointmentHandler, patientAuth, doctorAuth gin.HandlerFunc) {
	group := router.Group("/api/appointment")

	group.POST("/book-appointment", patientAuth, h.Book)
	group.GET("/appointments/patient", patientAuth, h.PatientAppointments)
	group.GET("/booked-appointments/:id", patientAuth, h.BookedOnDate)

	group.GET("/appointments/doctor", doctorAuth, h.DoctorAppointments)
	group.GET("/appointments/scheduled", doctorAuth, h.ScheduledAppointments)
	group.PUT("/appointments/accept/:id", doctorAuth, h.Accept)
	group.PUT("/appointments/cancel/:id", doctorAuth, h.Cancel)

	group.POST("/schedule-reminder", h.ScheduleReminders)
}
