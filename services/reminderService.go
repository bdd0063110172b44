package services

import (
	"CareConnect/models"
	"CareConnect/repositories"
	"context"
	"fmt"
	"log"
	"time"
)

// ReminderWindow is how far ahead the scheduling scan looks.
const ReminderWindow = 3 * 24 * time.Hour

// replayGrace lets rows that came due while no process was running
// (a restart at the wrong moment) still fire instead of being dropped.
const replayGrace = time.Hour

// ReminderOffsets are the day offsets, relative to the appointment
// date, at which a reminder fires.
var ReminderOffsets = []int{-3, -2, -1, 0}

type ReminderService interface {
	// ScheduleReminders scans appointments dated within the next three
	// days, ensures one durable row per (appointment, offset) still
	// ahead, and arms a timer for every pending unsent row — including
	// rows whose timers were lost to a restart. Safe to call repeatedly;
	// the send claim on each row prevents double delivery. Returns how
	// many timers were armed.
	ScheduleReminders(ctx context.Context) (int, error)
}

type reminderService struct {
	appointments repositories.AppointmentRepository
	reminders    repositories.ReminderRepository
	sender       EmailSender
	now          func() time.Time
}

func NewReminderService(appointments repositories.AppointmentRepository, reminders repositories.ReminderRepository, sender EmailSender) ReminderService {
	return &reminderService{
		appointments: appointments,
		reminders:    reminders,
		sender:       sender,
		now:          time.Now,
	}
}

func (s *reminderService) ScheduleReminders(ctx context.Context) (int, error) {
	now := s.now()
	appointments, err := s.appointments.ListWindow(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to scan appointments for reminders: %w", err)
	}

	for _, appointment := range appointments {
		for _, firing := range ReminderFireTimes(appointment.Date) {
			if firing.Before(now) {
				continue
			}
			if _, err := s.reminders.Ensure(ctx, appointment.ID, firing.Offset(), firing.At()); err != nil {
				return 0, err
			}
		}
	}

	// Timers live only in this process; the rows are the durable record.
	// Arming from the table rather than from the Ensure results means a
	// restart re-arms everything still pending.
	tasks, err := s.reminders.ListPending(ctx, now.Add(-replayGrace), now.Add(ReminderWindow))
	if err != nil {
		return 0, err
	}
	for _, task := range tasks {
		s.arm(task.AppointmentID, task.OffsetDays, task.FireAt.Sub(now))
	}
	return len(tasks), nil
}

// ReminderFiring is one computed (offset, instant) pair.
type ReminderFiring struct {
	offset int
	at     time.Time
}

func (f ReminderFiring) Offset() int   { return f.offset }
func (f ReminderFiring) At() time.Time { return f.at }

// Before reports whether the firing instant precedes t.
func (f ReminderFiring) Before(t time.Time) bool { return f.at.Before(t) }

// ReminderFireTimes computes the four firing instants for an
// appointment date.
func ReminderFireTimes(date time.Time) []ReminderFiring {
	firings := make([]ReminderFiring, 0, len(ReminderOffsets))
	for _, offset := range ReminderOffsets {
		firings = append(firings, ReminderFiring{offset: offset, at: date.AddDate(0, 0, offset)})
	}
	return firings
}

func (s *reminderService) arm(appointmentID string, offset int, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, func() {
		s.fire(appointmentID, offset)
	})
}

// fire sends the reminder for one (appointment, offset) pair. The
// appointment is reloaded first, so reminders for appointments that
// went terminal after scheduling are dropped; the row is then claimed,
// so overlapping timers from repeated scheduling runs send at most once.
func (s *reminderService) fire(appointmentID string, offset int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		log.Printf("Reminder %s/%dd: failed to reload appointment: %v", appointmentID, offset, err)
		return
	}
	if appointment == nil || appointment.Status != models.StatusScheduled {
		return
	}

	claimed, err := s.reminders.MarkSent(ctx, appointmentID, offset)
	if err != nil {
		log.Printf("Reminder %s/%dd: failed to claim reminder: %v", appointmentID, offset, err)
		return
	}
	if !claimed {
		return
	}

	body := fmt.Sprintf("This is a reminder for your appointment on %s at %s.",
		appointment.Date.Format("2006-01-02"), appointment.Time)
	if appointment.Patient != nil {
		if err := s.sender.Send(appointment.Patient.Email, "Appointment Reminder", body); err != nil {
			log.Printf("Reminder %s/%dd: patient email failed: %v", appointmentID, offset, err)
		}
	}
	if appointment.Doctor != nil {
		if err := s.sender.Send(appointment.Doctor.Email, "Appointment Reminder", body); err != nil {
			log.Printf("Reminder %s/%dd: doctor email failed: %v", appointmentID, offset, err)
		}
	}
}
