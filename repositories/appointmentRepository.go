package repositories

import (
	"CareConnect/apperr"
	"CareConnect/database"
	"CareConnect/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// CreateIfNoConflict inserts the appointment unless the patient
	// already holds a pending appointment with the same doctor dated
	// today or later. The check and insert run under a distributed lock
	// and a transaction so concurrent bookings cannot both pass.
	CreateIfNoConflict(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListScheduledForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListForDoctorOnDate(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) CreateIfNoConflict(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}

	lockKey := fmt.Sprintf("booking_lock:%s_%s", appointment.PatientID, appointment.DoctorID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	if !locked {
		return apperr.New(apperr.Conflict, "Another booking with this doctor is in progress, please retry.")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release booking lock: %v", err)
		}
	}()

	today := startOfDay(time.Now().UTC())
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("patient_id = ? AND doctor_id = ? AND status = ? AND date >= ?",
				appointment.PatientID, appointment.DoctorID, models.StatusScheduled, today).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.Conflict, "You already have an appointment with this doctor in the future.")
		}
		return tx.Create(appointment).Error
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", omitPassword).
		Preload("Doctor", omitPassword).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	stripAppointmentPasswords(&appointment)
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "Appointment not found")
	}
	return nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", omitPassword).
		Where("patient_id = ?", patientID).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	stripAllPasswords(appointments)
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", omitPassword).
		Where("doctor_id = ?", doctorID).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	stripAllPasswords(appointments)
	return appointments, nil
}

func (r *appointmentRepository) ListScheduledForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", omitPassword).
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusScheduled).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled appointments: %w", err)
	}
	stripAllPasswords(appointments)
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctorOnDate(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error) {
	day := startOfDay(date)
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date < ?", doctorID, day, day.AddDate(0, 0, 1)).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list booked appointments: %w", err)
	}
	return appointments, nil
}

// ListWindow returns appointments dated within [from, to) with both
// parties attached, for reminder scheduling.
func (r *appointmentRepository) ListWindow(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", omitPassword).
		Preload("Doctor", omitPassword).
		Where("date >= ? AND date < ?", from, to).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment window: %w", err)
	}
	stripAllPasswords(appointments)
	return appointments, nil
}

func omitPassword(db *gorm.DB) *gorm.DB {
	return db.Omit("password")
}

func stripAppointmentPasswords(a *models.Appointment) {
	if a.Patient != nil {
		a.Patient.Password = ""
	}
	if a.Doctor != nil {
		a.Doctor.Password = ""
	}
}

func stripAllPasswords(appointments []models.Appointment) {
	for i := range appointments {
		stripAppointmentPasswords(&appointments[i])
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
