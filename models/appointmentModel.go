package models

import (
	"time"
)

// Appointment statuses. Completed and cancelled are terminal.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment model
type Appointment struct {
	ID        string    `gorm:"primaryKey;column:id" json:"_id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patientId"`
	DoctorID  string    `gorm:"column:doctor_id;not null;index" json:"doctorId"`
	Date      time.Time `gorm:"column:date;not null;index" json:"date"`
	Time      string    `gorm:"column:time" json:"time"`
	Status    string    `gorm:"column:status;check:status IN ('scheduled', 'completed', 'cancelled');not null;default:scheduled" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	Patient   *Patient  `gorm:"foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Doctor    *Doctor   `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// IsTerminal reports whether no further status transition is allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// ReminderTask is one scheduled reminder firing for an appointment at a
// day offset relative to the appointment date. The (appointment, offset)
// pair is unique so re-running the scheduling scan never duplicates
// reminders.
type ReminderTask struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppointmentID string    `gorm:"column:appointment_id;not null;index;uniqueIndex:idx_appointment_offset" json:"appointmentId"`
	OffsetDays    int       `gorm:"column:offset_days;not null;uniqueIndex:idx_appointment_offset" json:"offsetDays"`
	FireAt        time.Time `gorm:"column:fire_at;not null;index" json:"fireAt"`
	Sent          bool      `gorm:"column:sent;not null;default:false" json:"sent"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ReminderTask) TableName() string {
	return "reminder_task"
}
