package utils

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRequest is the payload for patient and doctor registration.
// Fields are required but otherwise unconstrained: any non-empty email
// and password are accepted.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginRequest is the payload for patient and doctor login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// BookingRequest is the payload for booking an appointment. All fields
// are required; the patient comes from the token.
type BookingRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (r BookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Time, validation.Required),
	)
}

// HealthDataRequest is one health log entry; only the date is mandatory.
type HealthDataRequest struct {
	Date          string   `json:"date"`
	BMI           *float64 `json:"bmi"`
	HeartRate     *float64 `json:"heartRate"`
	Weight        *float64 `json:"weight"`
	FBCStatus     string   `json:"fbcStatus"`
	BodyTemp      *float64 `json:"bodyTemp"`
	BloodPressure string   `json:"bloodPressure"`
	GlucoseLevel  *float64 `json:"glucoseLevel"`
}

func (r HealthDataRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required, validation.Date("2006-01-02")),
	)
}

// ResetPasswordRequest carries a reset code and the replacement password.
// The code is always issued as six digits.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6)),
		validation.Field(&r.NewPassword, validation.Required),
	)
}
