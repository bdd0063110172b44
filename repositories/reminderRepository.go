package repositories

import (
	"CareConnect/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderRepository interface {
	// Ensure creates the reminder row for (appointment, offset) if it
	// does not exist yet. Returns true when a new row was created, so a
	// repeated scheduling scan never duplicates rows.
	Ensure(ctx context.Context, appointmentID string, offsetDays int, fireAt time.Time) (bool, error)
	// ListPending returns unsent rows with fire_at in [from, to). Timers
	// are armed from these rows, so rows ensured before a restart are
	// picked up again.
	ListPending(ctx context.Context, from, to time.Time) ([]models.ReminderTask, error)
	// MarkSent claims the row for sending: it flips sent to true only if
	// it was false, and reports whether this call made the transition.
	// Overlapping timers for the same row all but one get false.
	MarkSent(ctx context.Context, appointmentID string, offsetDays int) (bool, error)
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Ensure(ctx context.Context, appointmentID string, offsetDays int, fireAt time.Time) (bool, error) {
	task := models.ReminderTask{
		AppointmentID: appointmentID,
		OffsetDays:    offsetDays,
		FireAt:        fireAt,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}, {Name: "offset_days"}},
			DoNothing: true,
		}).
		Create(&task)
	if result.Error != nil {
		return false, fmt.Errorf("failed to ensure reminder task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *reminderRepository) ListPending(ctx context.Context, from, to time.Time) ([]models.ReminderTask, error) {
	var tasks []models.ReminderTask
	err := r.db.WithContext(ctx).
		Where("sent = ? AND fire_at >= ? AND fire_at < ?", false, from, to).
		Order("fire_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminder tasks: %w", err)
	}
	return tasks, nil
}

func (r *reminderRepository) MarkSent(ctx context.Context, appointmentID string, offsetDays int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ReminderTask{}).
		Where("appointment_id = ? AND offset_days = ? AND sent = ?", appointmentID, offsetDays, false).
		Update("sent", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark reminder sent: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
