package handlers

import (
	"CareConnect/apperr"
	"CareConnect/middlewares"
	"CareConnect/repositories"
	"CareConnect/services"
	"CareConnect/utils"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service  services.DoctorService
	uploader utils.ImageUploader
}

func NewDoctorHandler(service services.DoctorService, uploader utils.ImageUploader) *DoctorHandler {
	return &DoctorHandler{service: service, uploader: uploader}
}

func (h *DoctorHandler) Register(c *gin.Context) {
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

func (h *DoctorHandler) Login(c *gin.Context) {
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

// List serves the filtered, paginated public listing.
func (h *DoctorHandler) List(c *gin.Context) {
	query, err := repositories.ParseDoctorQuery(c.Request.URL.Query())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, page, http.StatusOK)
}

func (h *DoctorHandler) GetAll(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctors": doctors}, http.StatusOK)
}

func (h *DoctorHandler) Profile(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	profile, err := h.service.GetByID(c.Request.Context(), doctor.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, profile, http.StatusOK)
}

func (h *DoctorHandler) GetByID(c *gin.Context) {
	doctor, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, doctor, http.StatusOK)
}

// Update accepts a multipart form: profile fields as form values, plus
// up to five image files stored as clinic images.
func (h *DoctorHandler) Update(c *gin.Context) {
	doctor, err := middlewares.DoctorFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		middlewares.RespondError(c, apperr.Wrap(apperr.Validation, "invalid multipart form", err))
		return
	}

	req := services.UpdateDoctorRequest{
		FirstName:     formValue(form.Value, "firstName"),
		LastName:      formValue(form.Value, "lastName"),
		Email:         formValue(form.Value, "email"),
		Phone:         formValue(form.Value, "phone"),
		Bio:           formValue(form.Value, "bio"),
		Gender:        formValue(form.Value, "gender"),
		City:          formValue(form.Value, "city"),
		Address:       formValue(form.Value, "address"),
		ClinicName:    formValue(form.Value, "clinicName"),
		ClinicAddress: formValue(form.Value, "clinicAddress"),
		ProfileImage:  formValue(form.Value, "profileImage"),
		Password:      formValue(form.Value, "password"),
	}

	if raw := formValue(form.Value, "experienceYears"); raw != nil {
		years, err := strconv.Atoi(*raw)
		if err != nil {
			middlewares.RespondError(c, apperr.New(apperr.Validation, "experienceYears must be an integer"))
			return
		}
		req.ExperienceYears = &years
	}
	if raw := formValue(form.Value, "consultationFee"); raw != nil {
		fee, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			middlewares.RespondError(c, apperr.New(apperr.Validation, "consultationFee must be a number"))
			return
		}
		req.ConsultationFee = &fee
	}
	req.Specializations = splitList(form.Value["specializations"])

	if files := form.File["images"]; len(files) > 0 {
		urls, err := h.uploader.UploadAll(c.Request.Context(), files)
		if err != nil {
			middlewares.RespondError(c, apperr.Wrap(apperr.Transport, "image upload failed", err))
			return
		}
		req.ClinicImages = urls
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), doctor.ID, req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

func (h *DoctorHandler) ForgotPassword(c *gin.Context) {
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

func (h *DoctorHandler) ResetPassword(c *gin.Context) {
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

// splitList flattens repeated form fields and comma-separated values
// into one trimmed list.
func splitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
