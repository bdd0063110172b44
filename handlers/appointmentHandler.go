package handlers

import (
	"CareConnect/apperr"
	"CareConnect/middlewares"
	"CareConnect/services"
	"CareConnect/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service   services.AppointmentService
	reminders services.ReminderService
}

func NewAppointmentHandler(service services.AppointmentService, reminders services.ReminderService) *AppointmentHandler {
	return &AppointmentHandler{service: service, reminders: reminders}
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var req utils.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "All fields are required", err))
		return
	}
	result, err := h.service.Book(c.Request.Context(), patient.ID, req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	body := gin.H{"appointment": result.Appointment}
	if result.Warning != "" {
		body["notice"] = result.Warning
	}
	middlewares.RespondJSON(c, body, http.StatusCreated)
}

func (h *AppointmentHandler) Accept(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Accept(c.Request.Context(), doctor.ID, c.Param("id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Appointment accepted successfully"}, http.StatusOK)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Cancel(c.Request.Context(), doctor.ID, c.Param("id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Appointment cancelled successfully"}, http.StatusOK)
}

func (h *AppointmentHandler) PatientAppointments(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointments, err := h.service.ListForPatient(c.Request.Context(), patient.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointments": appointments}, http.StatusOK)
}

func (h *AppointmentHandler) DoctorAppointments(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointments, err := h.service.ListForDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointments": appointments}, http.StatusOK)
}

func (h *AppointmentHandler) ScheduledAppointments(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointments, err := h.service.ListScheduledForDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointments": appointments}, http.StatusOK)
}

// BookedOnDate lists a doctor's appointments on a given day, used by
// patients to pick a free slot.
func (h *AppointmentHandler) BookedOnDate(c *gin.Context) {
	if _, err := middlewares.PatientFromContext(c.Request.Context()); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	date := c.Query("date")
	if date == "" {
		middlewares.RespondError(c, apperr.New(apperr.Validation, "date query parameter is required"))
		return
	}
	appointments, err := h.service.ListBookedOnDate(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointments": appointments}, http.StatusOK)
}

func (h *AppointmentHandler) ScheduleReminders(c *gin.Context) {
	armed, err := h.reminders.ScheduleReminders(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Transport, "failed to schedule reminders", err))
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Reminders scheduled", "scheduled": armed}, http.StatusOK)
}
