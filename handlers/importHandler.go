package handlers

import (
	"CareConnect/middlewares"
	"CareConnect/models"
	"CareConnect/repositories"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImportHandler reseeds the doctor and patient tables from fixture data.
// Destructive: every existing row of the variant is deleted first.
type ImportHandler struct {
	doctors  repositories.DoctorRepository
	patients repositories.PatientRepository
}

func NewImportHandler(doctors repositories.DoctorRepository, patients repositories.PatientRepository) *ImportHandler {
	return &ImportHandler{doctors: doctors, patients: patients}
}

func (h *ImportHandler) ImportDoctors(c *gin.Context) {
	inserted, err := h.doctors.ReplaceAll(c.Request.Context(), models.DoctorSeeds)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctors": inserted}, http.StatusCreated)
}

func (h *ImportHandler) ImportPatients(c *gin.Context) {
	inserted, err := h.patients.ReplaceAll(c.Request.Context(), models.PatientSeeds)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patients": inserted}, http.StatusCreated)
}
