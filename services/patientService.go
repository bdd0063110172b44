package services

import (
	"CareConnect/apperr"
	"CareConnect/models"
	"CareConnect/repositories"
	"CareConnect/utils"
	"context"
	"time"
)

// AuthResponse is returned by register and login. The password never
// appears here.
type AuthResponse struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdatePatientRequest carries a field-by-field merge: nil fields are
// left unchanged on the stored record.
type UpdatePatientRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Email        *string `json:"email"`
	DOB          *string `json:"dob"`
	BloodGroup   *string `json:"bloodGroup"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	ZipCode      *string `json:"zipCode"`
	Location     *string `json:"location"`
	ProfileImage *string `json:"profileImage"`
	Password     *string `json:"password"`
}

// ResetCodeStore keeps short-lived password reset codes.
type ResetCodeStore interface {
	Set(ctx context.Context, variant, email, code string) error
	Get(ctx context.Context, variant, email string) (string, error)
	Delete(ctx context.Context, variant, email string) error
}

type PatientService interface {
	Register(ctx context.Context, req utils.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req utils.LoginRequest) (*AuthResponse, error)
	Profile(ctx context.Context, id string) (*models.Patient, []models.Doctor, error)
	UpdateProfile(ctx context.Context, id string, req UpdatePatientRequest) (*models.Patient, error)
	ToggleBookmark(ctx context.Context, patientID, doctorID string) (bool, error)
	AddHealthData(ctx context.Context, patientID string, req utils.HealthDataRequest) (*models.Patient, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req utils.ResetPasswordRequest) error
}

type patientService struct {
	repo      repositories.PatientRepository
	codes     ResetCodeStore
	sender    EmailSender
	jwtSecret string
}

func NewPatientService(repo repositories.PatientRepository, codes ResetCodeStore, sender EmailSender, jwtSecret string) PatientService {
	return &patientService{repo: repo, codes: codes, sender: sender, jwtSecret: jwtSecret}
}

func (s *patientService) Register(ctx context.Context, req utils.RegisterRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "please add all fields", err)
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to check existing account", err)
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "User already exist")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to hash password", err)
	}

	patient := &models.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to create account", err)
	}

	return s.authResponse(patient.ID, patient.FirstName, patient.LastName, patient.Email, patient.CreatedAt)
}

func (s *patientService) Login(ctx context.Context, req utils.LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Please fill all fields", err)
	}

	patient, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	// Unknown email and wrong password are indistinguishable.
	if patient == nil || !utils.CheckPassword(patient.Password, req.Password) {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	return s.authResponse(patient.ID, patient.FirstName, patient.LastName, patient.Email, patient.CreatedAt)
}

func (s *patientService) Profile(ctx context.Context, id string) (*models.Patient, []models.Doctor, error) {
	patient, bookmarked, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Transport, "failed to load profile", err)
	}
	if patient == nil {
		return nil, nil, apperr.New(apperr.NotFound, "Patient not found")
	}
	return patient, bookmarked, nil
}

func (s *patientService) UpdateProfile(ctx context.Context, id string, req UpdatePatientRequest) (*models.Patient, error) {
	fields := map[string]interface{}{}
	setString(fields, "first_name", req.FirstName)
	setString(fields, "last_name", req.LastName)
	setString(fields, "email", req.Email)
	setString(fields, "dob", req.DOB)
	setString(fields, "blood_group", req.BloodGroup)
	setString(fields, "phone", req.Phone)
	setString(fields, "address", req.Address)
	setString(fields, "city", req.City)
	setString(fields, "state", req.State)
	setString(fields, "country", req.Country)
	setString(fields, "zip_code", req.ZipCode)
	setString(fields, "location", req.Location)
	setString(fields, "profile_image", req.ProfileImage)

	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.Transport, "failed to hash password", err)
		}
		fields["password"] = hashed
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Transport, "failed to update profile", err)
	}

	patient, err := s.repo.GetByID(ctx, id)
	if err != nil || patient == nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to reload profile", err)
	}
	return patient, nil
}

func (s *patientService) ToggleBookmark(ctx context.Context, patientID, doctorID string) (bool, error) {
	if doctorID == "" {
		return false, apperr.New(apperr.Validation, "Doctor ID is required")
	}
	added, err := s.repo.ToggleBookmark(ctx, patientID, doctorID)
	if err != nil {
		return false, apperr.Wrap(apperr.Transport, "failed to update bookmark", err)
	}
	return added, nil
}

func (s *patientService) AddHealthData(ctx context.Context, patientID string, req utils.HealthDataRequest) (*models.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid health data", err)
	}

	record := &models.HealthRecord{
		PatientID:     patientID,
		Date:          req.Date,
		BMI:           req.BMI,
		HeartRate:     req.HeartRate,
		Weight:        req.Weight,
		FBCStatus:     req.FBCStatus,
		BodyTemp:      req.BodyTemp,
		BloodPressure: req.BloodPressure,
		GlucoseLevel:  req.GlucoseLevel,
	}
	if err := s.repo.AppendHealthRecord(ctx, record); err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to add health data", err)
	}

	patient, err := s.repo.GetByID(ctx, patientID)
	if err != nil || patient == nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to reload patient", err)
	}
	return patient, nil
}

func (s *patientService) ForgotPassword(ctx context.Context, email string) error {
	patient, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	if patient == nil {
		return apperr.New(apperr.NotFound, "User not found")
	}

	code := utils.GenerateResetCode()
	if err := s.codes.Set(ctx, utils.VariantPatient, email, code); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to store reset code", err)
	}
	if err := s.sender.Send(email, "Password Reset Code", "Your password reset code is: "+code); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to send reset code email", err)
	}
	return nil
}

func (s *patientService) ResetPassword(ctx context.Context, req utils.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid reset request", err)
	}

	stored, err := s.codes.Get(ctx, utils.VariantPatient, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to load reset code", err)
	}
	if stored == "" || stored != req.Code {
		return apperr.New(apperr.Unauthorized, "Invalid reset code")
	}

	patient, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	if patient == nil {
		return apperr.New(apperr.NotFound, "User not found")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to hash password", err)
	}
	if err := s.repo.Update(ctx, patient.ID, map[string]interface{}{"password": hashed}); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to update password", err)
	}

	_ = s.codes.Delete(ctx, utils.VariantPatient, req.Email)
	return nil
}

func (s *patientService) authResponse(id, firstName, lastName, email string, createdAt time.Time) (*AuthResponse, error) {
	token, err := utils.GenerateToken(id, utils.VariantPatient, s.jwtSecret)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to generate token", err)
	}
	return &AuthResponse{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Token:     token,
		CreatedAt: createdAt,
	}, nil
}

func setString(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
