package services

import (
	"CareConnect/models"
	"context"
	"testing"
	"time"
)

func newReminderServiceForTest(now time.Time) (*reminderService, *fakeAppointmentRepo, *fakeReminderRepo, *fakeSender) {
	appointments := newFakeAppointmentRepo()
	reminders := newFakeReminderRepo()
	sender := &fakeSender{}
	svc := &reminderService{
		appointments: appointments,
		reminders:    reminders,
		sender:       sender,
		now:          func() time.Time { return now },
	}
	return svc, appointments, reminders, sender
}

func TestReminderFireTimes(t *testing.T) {
	date := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	firings := ReminderFireTimes(date)
	if len(firings) != 4 {
		t.Fatalf("got %d firings, want 4", len(firings))
	}
	wantOffsets := []int{-3, -2, -1, 0}
	for i, f := range firings {
		if f.Offset() != wantOffsets[i] {
			t.Errorf("firing %d offset = %d, want %d", i, f.Offset(), wantOffsets[i])
		}
		if want := date.AddDate(0, 0, wantOffsets[i]); !f.At().Equal(want) {
			t.Errorf("firing %d at = %v, want %v", i, f.At(), want)
		}
	}
}

func TestScheduleRemindersEnsuresOnlyFutureOffsets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, appointments, reminders, _ := newReminderServiceForTest(now)

	// Appointment in two days: the -3 and -2 day offsets are already in
	// the past, -1 and 0 remain.
	appointments.window = []models.Appointment{{
		ID:   "a1",
		Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	}}

	armed, err := svc.ScheduleReminders(context.Background())
	if err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if armed != 2 {
		t.Fatalf("armed = %d, want 2", armed)
	}
	for _, offset := range []int{-1, 0} {
		if !reminders.has("a1", offset) {
			t.Errorf("reminder a1/%d not ensured", offset)
		}
	}
	for _, offset := range []int{-3, -2} {
		if reminders.has("a1", offset) {
			t.Errorf("past reminder a1/%d was ensured", offset)
		}
	}
}

func TestScheduleRemindersDoesNotDuplicateRows(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, appointments, reminders, _ := newReminderServiceForTest(now)
	appointments.window = []models.Appointment{{
		ID:   "a1",
		Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	}}

	for run := 0; run < 2; run++ {
		if _, err := svc.ScheduleReminders(context.Background()); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
	if n := len(reminders.tasks); n != 2 {
		t.Fatalf("rows after two runs = %d, want 2", n)
	}
}

func TestScheduleRemindersRearmsPendingRowsAfterRestart(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, _, reminders, _ := newReminderServiceForTest(now)

	// Rows ensured by a previous process whose timers died with it. The
	// scan window holds no appointments, so arming must come from the
	// stored rows alone.
	reminders.Ensure(context.Background(), "a1", -1, now.Add(12*time.Hour))
	reminders.Ensure(context.Background(), "a1", 0, now.Add(36*time.Hour))

	armed, err := svc.ScheduleReminders(context.Background())
	if err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if armed != 2 {
		t.Fatalf("armed = %d, want 2 re-armed pending rows", armed)
	}
}

func TestScheduleRemindersSkipsSentRows(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, _, reminders, _ := newReminderServiceForTest(now)

	reminders.Ensure(context.Background(), "a1", -1, now.Add(12*time.Hour))
	reminders.Ensure(context.Background(), "a1", 0, now.Add(36*time.Hour))
	reminders.MarkSent(context.Background(), "a1", -1)

	armed, err := svc.ScheduleReminders(context.Background())
	if err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if armed != 1 {
		t.Fatalf("armed = %d, want 1 (sent row must not re-arm)", armed)
	}
}

func TestReminderFireSendsToBothParties(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, appointments, reminders, sender := newReminderServiceForTest(now)
	appointments.add(&models.Appointment{
		ID:      "a1",
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Time:    "10:00",
		Status:  models.StatusScheduled,
		Patient: &models.Patient{Email: "john@example.com"},
		Doctor:  &models.Doctor{Email: "doc@example.com"},
	})
	reminders.Ensure(context.Background(), "a1", -1, now)

	svc.fire("a1", -1)

	mail := sender.sent()
	if len(mail) != 2 {
		t.Fatalf("sent %d mails, want 2: %+v", len(mail), mail)
	}
	recipients := map[string]bool{mail[0].To: true, mail[1].To: true}
	if !recipients["john@example.com"] || !recipients["doc@example.com"] {
		t.Errorf("recipients = %v", recipients)
	}
	if !reminders.sent("a1", -1) {
		t.Error("reminder not marked sent")
	}
}

func TestReminderFireSendsAtMostOnce(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, appointments, reminders, sender := newReminderServiceForTest(now)
	appointments.add(&models.Appointment{
		ID:      "a1",
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Time:    "10:00",
		Status:  models.StatusScheduled,
		Patient: &models.Patient{Email: "john@example.com"},
		Doctor:  &models.Doctor{Email: "doc@example.com"},
	})
	reminders.Ensure(context.Background(), "a1", 0, now)

	// Overlapping timers from repeated scheduling runs fire the same
	// row; only the first claim may send.
	svc.fire("a1", 0)
	svc.fire("a1", 0)

	if mail := sender.sent(); len(mail) != 2 {
		t.Fatalf("sent %d mails after double fire, want 2", len(mail))
	}
}

func TestReminderFireSkipsTerminalAppointment(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, appointments, reminders, sender := newReminderServiceForTest(now)
	appointments.add(&models.Appointment{
		ID:      "a1",
		Status:  models.StatusCancelled,
		Patient: &models.Patient{Email: "john@example.com"},
		Doctor:  &models.Doctor{Email: "doc@example.com"},
	})
	reminders.Ensure(context.Background(), "a1", 0, now)

	svc.fire("a1", 0)

	if mail := sender.sent(); len(mail) != 0 {
		t.Errorf("cancelled appointment fired reminders: %+v", mail)
	}
	if reminders.sent("a1", 0) {
		t.Error("cancelled reminder marked sent")
	}
}

func TestReminderFireSkipsMissingAppointment(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, sender := newReminderServiceForTest(now)

	svc.fire("ghost", 0)

	if mail := sender.sent(); len(mail) != 0 {
		t.Errorf("missing appointment fired reminders: %+v", mail)
	}
}
