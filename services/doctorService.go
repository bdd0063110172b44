package services

import (
	"CareConnect/apperr"
	"CareConnect/models"
	"CareConnect/repositories"
	"CareConnect/utils"
	"context"
)

// UpdateDoctorRequest carries a field-by-field merge; nil fields are
// left unchanged. Specializations and ClinicImages replace the stored
// lists only when present.
type UpdateDoctorRequest struct {
	FirstName       *string  `json:"firstName"`
	LastName        *string  `json:"lastName"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Bio             *string  `json:"bio"`
	Gender          *string  `json:"gender"`
	City            *string  `json:"city"`
	Address         *string  `json:"address"`
	ClinicName      *string  `json:"clinicName"`
	ClinicAddress   *string  `json:"clinicAddress"`
	ExperienceYears *int     `json:"experienceYears"`
	ConsultationFee *float64 `json:"consultationFee"`
	ProfileImage    *string  `json:"profileImage"`
	Password        *string  `json:"password"`
	Specializations []string `json:"specializations"`
	ClinicImages    []string `json:"clinicImages"`
}

// DoctorPage is one page of the filtered doctor listing.
type DoctorPage struct {
	Doctors []models.Doctor `json:"doctors"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
}

type DoctorService interface {
	Register(ctx context.Context, req utils.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req utils.LoginRequest) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	List(ctx context.Context, query *repositories.DoctorQuery) (*DoctorPage, error)
	UpdateProfile(ctx context.Context, id string, req UpdateDoctorRequest) (*models.Doctor, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req utils.ResetPasswordRequest) error
}

type doctorService struct {
	repo      repositories.DoctorRepository
	codes     ResetCodeStore
	sender    EmailSender
	jwtSecret string
}

func NewDoctorService(repo repositories.DoctorRepository, codes ResetCodeStore, sender EmailSender, jwtSecret string) DoctorService {
	return &doctorService{repo: repo, codes: codes, sender: sender, jwtSecret: jwtSecret}
}

func (s *doctorService) Register(ctx context.Context, req utils.RegisterRequest) (*AuthResponse, error) {
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

	doctor := &models.Doctor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to create account", err)
	}

	return s.authResponse(doctor)
}

func (s *doctorService) Login(ctx context.Context, req utils.LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Please fill all fields", err)
	}

	doctor, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	// Unknown email and wrong password are indistinguishable.
	if doctor == nil || !utils.CheckPassword(doctor.Password, req.Password) {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	return s.authResponse(doctor)
}

func (s *doctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to load doctor", err)
	}
	if doctor == nil {
		return nil, apperr.New(apperr.NotFound, "Doctor not found")
	}
	return doctor, nil
}

func (s *doctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "Error fetching doctors", err)
	}
	return doctors, nil
}

func (s *doctorService) List(ctx context.Context, query *repositories.DoctorQuery) (*DoctorPage, error) {
	doctors, pages, err := s.repo.List(ctx, query)
	if err != nil {
		if apperr.KindOf(err) == apperr.Validation {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Transport, "Error fetching doctors", err)
	}
	return &DoctorPage{Doctors: doctors, Page: query.Page, Pages: pages}, nil
}

func (s *doctorService) UpdateProfile(ctx context.Context, id string, req UpdateDoctorRequest) (*models.Doctor, error) {
	fields := map[string]interface{}{}
	setString(fields, "first_name", req.FirstName)
	setString(fields, "last_name", req.LastName)
	setString(fields, "email", req.Email)
	setString(fields, "phone", req.Phone)
	setString(fields, "bio", req.Bio)
	setString(fields, "gender", req.Gender)
	setString(fields, "city", req.City)
	setString(fields, "address", req.Address)
	setString(fields, "clinic_name", req.ClinicName)
	setString(fields, "clinic_address", req.ClinicAddress)
	setString(fields, "profile_image", req.ProfileImage)
	if req.ExperienceYears != nil {
		fields["experience_years"] = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		fields["consultation_fee"] = *req.ConsultationFee
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.Transport, "failed to hash password", err)
		}
		fields["password"] = hashed
	}

	if err := s.repo.Update(ctx, id, fields, req.Specializations, req.ClinicImages); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Transport, "Error updating doctor details", err)
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil || doctor == nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to reload doctor", err)
	}
	return doctor, nil
}

func (s *doctorService) ForgotPassword(ctx context.Context, email string) error {
	doctor, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	if doctor == nil {
		return apperr.New(apperr.NotFound, "User not found")
	}

	code := utils.GenerateResetCode()
	if err := s.codes.Set(ctx, utils.VariantDoctor, email, code); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to store reset code", err)
	}
	if err := s.sender.Send(email, "Password Reset Code", "Your password reset code is: "+code); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to send reset code email", err)
	}
	return nil
}

func (s *doctorService) ResetPassword(ctx context.Context, req utils.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid reset request", err)
	}

	stored, err := s.codes.Get(ctx, utils.VariantDoctor, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to load reset code", err)
	}
	if stored == "" || stored != req.Code {
		return apperr.New(apperr.Unauthorized, "Invalid reset code")
	}

	doctor, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to look up account", err)
	}
	if doctor == nil {
		return apperr.New(apperr.NotFound, "User not found")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to hash password", err)
	}
	if err := s.repo.Update(ctx, doctor.ID, map[string]interface{}{"password": hashed}, nil, nil); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to update password", err)
	}

	_ = s.codes.Delete(ctx, utils.VariantDoctor, req.Email)
	return nil
}

func (s *doctorService) authResponse(doctor *models.Doctor) (*AuthResponse, error) {
	token, err := utils.GenerateToken(doctor.ID, utils.VariantDoctor, s.jwtSecret)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to generate token", err)
	}
	return &AuthResponse{
		ID:        doctor.ID,
		FirstName: doctor.FirstName,
		LastName:  doctor.LastName,
		Email:     doctor.Email,
		Token:     token,
		CreatedAt: doctor.CreatedAt,
	}, nil
}
