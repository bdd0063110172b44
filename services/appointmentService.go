package services

import (
	"CareConnect/apperr"
	"CareConnect/models"
	"CareConnect/repositories"
	"CareConnect/utils"
	"context"
	"fmt"
	"log"
	"time"
)

// BookingResult is the outcome of a booking. Warning is set when the
// appointment persisted but the doctor notification failed; the booking
// itself is the source of truth.
type BookingResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Warning     string              `json:"notice,omitempty"`
}

type AppointmentService interface {
	Book(ctx context.Context, patientID string, req utils.BookingRequest) (*BookingResult, error)
	Accept(ctx context.Context, doctorID, appointmentID string) error
	Cancel(ctx context.Context, doctorID, appointmentID string) error
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListScheduledForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListBookedOnDate(ctx context.Context, doctorID string, date string) ([]models.Appointment, error)
}

type appointmentService struct {
	repo       repositories.AppointmentRepository
	doctorRepo repositories.DoctorRepository
	sender     EmailSender
}

func NewAppointmentService(repo repositories.AppointmentRepository, doctorRepo repositories.DoctorRepository, sender EmailSender) AppointmentService {
	return &appointmentService{repo: repo, doctorRepo: doctorRepo, sender: sender}
}

func (s *appointmentService) Book(ctx context.Context, patientID string, req utils.BookingRequest) (*BookingResult, error) {
	if patientID == "" {
		return nil, apperr.New(apperr.Validation, "All fields are required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "All fields are required", err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid appointment date", err)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to look up doctor", err)
	}
	if doctor == nil {
		return nil, apperr.New(apperr.NotFound, "Doctor not found")
	}

	appointment := &models.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    models.StatusScheduled,
	}
	if err := s.repo.CreateIfNoConflict(ctx, appointment); err != nil {
		if apperr.KindOf(err) == apperr.Conflict {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Transport, "failed to book appointment", err)
	}

	result := &BookingResult{Appointment: appointment}
	body := fmt.Sprintf("A new appointment has been booked with you. Date: %s, Time: %s.", req.Date, req.Time)
	if err := s.sender.Send(doctor.Email, "New Appointment Booked", body); err != nil {
		// The booking is already persisted; notification failure must
		// not roll it back.
		log.Printf("Booking notification failed for appointment %s: %v", appointment.ID, err)
		result.Warning = "appointment booked, but the doctor could not be notified"
	}
	return result, nil
}

func (s *appointmentService) Accept(ctx context.Context, doctorID, appointmentID string) error {
	return s.transition(ctx, doctorID, appointmentID, models.StatusCompleted, "Appointment Accepted", "accepted")
}

func (s *appointmentService) Cancel(ctx context.Context, doctorID, appointmentID string) error {
	return s.transition(ctx, doctorID, appointmentID, models.StatusCancelled, "Appointment Cancelled", "rejected")
}

// transition moves a scheduled appointment to a terminal status and
// notifies the patient. Terminal appointments admit no further change.
func (s *appointmentService) transition(ctx context.Context, doctorID, appointmentID, status, subject, verdict string) error {
	if appointmentID == "" {
		return apperr.New(apperr.Validation, "Appointment ID is required")
	}

	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return apperr.Wrap(apperr.Transport, "failed to load appointment", err)
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return apperr.New(apperr.NotFound, "Appointment not found")
	}
	if appointment.IsTerminal() {
		return apperr.New(apperr.Conflict, "Appointment is already "+appointment.Status)
	}

	if err := s.repo.UpdateStatus(ctx, appointmentID, status); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return err
		}
		return apperr.Wrap(apperr.Transport, "failed to update appointment", err)
	}

	if appointment.Patient == nil || appointment.Doctor == nil {
		return nil
	}
	body := fmt.Sprintf(
		"Dear %s %s,\n\nYour appointment with Dr. %s %s has been %s.\n\nAppointment Details:\nDate: %s\nTime: %s\nStatus: %s\n\nThank you!",
		appointment.Patient.FirstName, appointment.Patient.LastName,
		appointment.Doctor.FirstName, appointment.Doctor.LastName,
		verdict,
		appointment.Date.Format("2006-01-02"), appointment.Time, status,
	)
	if err := s.sender.Send(appointment.Patient.Email, subject, body); err != nil {
		return apperr.Wrap(apperr.Transport, "failed to send notification", err)
	}
	return nil
}

func (s *appointmentService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to list appointments", err)
	}
	return appointments, nil
}

func (s *appointmentService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to list appointments", err)
	}
	return appointments, nil
}

func (s *appointmentService) ListScheduledForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appointments, err := s.repo.ListScheduledForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to list appointments", err)
	}
	return appointments, nil
}

func (s *appointmentService) ListBookedOnDate(ctx context.Context, doctorID string, date string) ([]models.Appointment, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid date", err)
	}
	appointments, err := s.repo.ListForDoctorOnDate(ctx, doctorID, day)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "failed to list booked appointments", err)
	}
	return appointments, nil
}
