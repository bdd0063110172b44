package handlers

import (
	"CareConnect/apperr"
	"CareConnect/middlewares"
	"CareConnect/services"
	"CareConnect/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service  services.PatientService
	uploader utils.ImageUploader
}

func NewPatientHandler(service services.PatientService, uploader utils.ImageUploader) *PatientHandler {
	return &PatientHandler{service: service, uploader: uploader}
}

func (h *PatientHandler) Register(c *gin.Context) {
	var req utils.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "please add all fields", err))
		return
	}
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, resp, http.StatusCreated)
}

func (h *PatientHandler) Login(c *gin.Context) {
	var req utils.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "Please fill all fields", err))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, resp, http.StatusOK)
}

func (h *PatientHandler) Profile(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	profile, bookmarked, err := h.service.Profile(c.Request.Context(), patient.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patient": profile, "bookmarkedDoctors": bookmarked}, http.StatusOK)
}

// Update accepts a multipart form: profile fields as form values, plus
// up to five image files whose first upload becomes the profile image.
func (h *PatientHandler) Update(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "invalid multipart form", err))
		return
	}

	req := services.UpdatePatientRequest{
		FirstName:    formValue(form.Value, "firstName"),
		LastName:     formValue(form.Value, "lastName"),
		Email:        formValue(form.Value, "email"),
		DOB:          formValue(form.Value, "dob"),
		BloodGroup:   formValue(form.Value, "bloodGroup"),
		Phone:        formValue(form.Value, "phone"),
		Address:      formValue(form.Value, "address"),
		City:         formValue(form.Value, "city"),
		State:        formValue(form.Value, "state"),
		Country:      formValue(form.Value, "country"),
		ZipCode:      formValue(form.Value, "zipCode"),
		Location:     formValue(form.Value, "location"),
		ProfileImage: formValue(form.Value, "profileImage"),
		Password:     formValue(form.Value, "password"),
	}

	if files := form.File["images"]; len(files) > 0 {
		urls, err := h.uploader.UploadAll(c.Request.Context(), files)
		if err != nil {
			middlewares.RespondError(c, apperr.Wrap(apperr.Transport, "image upload failed", err))
			return
		}
		req.ProfileImage = &urls[0]
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), patient.ID, req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

func (h *PatientHandler) Bookmark(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	added, err := h.service.ToggleBookmark(c.Request.Context(), patient.ID, c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	message := "Bookmark removed"
	if added {
		message = "Bookmark added"
	}
	middlewares.RespondJSON(c, gin.H{"message": message}, http.StatusOK)
}

func (h *PatientHandler) AddHealthData(c *gin.Context) {
	patient, err := middlewares.PatientFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var req utils.HealthDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "invalid health data", err))
		return
	}
	updated, err := h.service.AddHealthData(c.Request.Context(), patient.ID, req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusCreated)
}

func (h *PatientHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		middlewares.RespondError(c, apperr.New(apperr.Validation, "Email is required"))
		return
	}
	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Password reset code sent"}, http.StatusOK)
}

func (h *PatientHandler) ResetPassword(c *gin.Context) {
	var req utils.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "invalid reset request", err))
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Password reset successful"}, http.StatusOK)
}

// formValue returns a pointer to the first value of key, or nil when the
// field was absent, so absent fields stay untouched in merge updates.
func formValue(values map[string][]string, key string) *string {
	vals, ok := values[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
