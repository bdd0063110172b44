package services

import (
	"CareConnect/apperr"
	"CareConnect/models"
	"CareConnect/repositories"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// In-memory stand-ins for the repository and infrastructure interfaces.

type fakePatientRepo struct {
	patients map[string]*models.Patient
	byEmail  map[string]*models.Patient
	updates  map[string]map[string]interface{}
	bookmark map[string]bool
	health   []*models.HealthRecord
	nextID   int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients: map[string]*models.Patient{},
		byEmail:  map[string]*models.Patient{},
		updates:  map[string]map[string]interface{}{},
		bookmark: map[string]bool{},
	}
}

func (f *fakePatientRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	f.nextID++
	patient.ID = fmt.Sprintf("p%d", f.nextID)
	patient.CreatedAt = time.Now()
	f.patients[patient.ID] = patient
	f.byEmail[patient.Email] = patient
	return nil
}

func (f *fakePatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	return f.byEmail[email], nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) GetProfile(ctx context.Context, id string) (*models.Patient, []models.Doctor, error) {
	return f.patients[id], nil, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, ok := f.patients[id]; !ok {
		return apperr.New(apperr.NotFound, "Patient not found")
	}
	f.updates[id] = fields
	return nil
}

func (f *fakePatientRepo) ToggleBookmark(ctx context.Context, patientID, doctorID string) (bool, error) {
	key := patientID + ":" + doctorID
	if f.bookmark[key] {
		delete(f.bookmark, key)
		return false, nil
	}
	f.bookmark[key] = true
	return true, nil
}

func (f *fakePatientRepo) AppendHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	f.health = append(f.health, record)
	return nil
}

func (f *fakePatientRepo) ResolvePatient(ctx context.Context, id string) (*models.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) ReplaceAll(ctx context.Context, seeds []models.PatientSeed) ([]models.Patient, error) {
	return nil, errors.New("not implemented")
}

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
	byEmail map[string]*models.Doctor
	updates map[string]map[string]interface{}
	specs   map[string][]string
	images  map[string][]string
	nextID  int

	listDoctors []models.Doctor
	listPages   int
	listErr     error
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: map[string]*models.Doctor{},
		byEmail: map[string]*models.Doctor{},
		updates: map[string]map[string]interface{}{},
		specs:   map[string][]string{},
		images:  map[string][]string{},
	}
}

func (f *fakeDoctorRepo) add(doctor *models.Doctor) *models.Doctor {
	f.nextID++
	if doctor.ID == "" {
		doctor.ID = fmt.Sprintf("d%d", f.nextID)
	}
	f.doctors[doctor.ID] = doctor
	f.byEmail[doctor.Email] = doctor
	return doctor
}

func (f *fakeDoctorRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.CreatedAt = time.Now()
	f.add(doctor)
	return nil
}

func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return f.byEmail[email], nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, query *repositories.DoctorQuery) ([]models.Doctor, int, error) {
	return f.listDoctors, f.listPages, f.listErr
}

func (f *fakeDoctorRepo) Update(ctx context.Context, id string, fields map[string]interface{}, specializations []string, clinicImages []string) error {
	if _, ok := f.doctors[id]; !ok {
		return apperr.New(apperr.NotFound, "Doctor not found")
	}
	f.updates[id] = fields
	if specializations != nil {
		f.specs[id] = specializations
	}
	if clinicImages != nil {
		f.images[id] = clinicImages
	}
	return nil
}

func (f *fakeDoctorRepo) ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) ReplaceAll(ctx context.Context, seeds []models.DoctorSeed) ([]models.Doctor, error) {
	return nil, errors.New("not implemented")
}

type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
	conflictErr  error
	statuses     map[string]string
	window       []models.Appointment
	nextID       int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[string]*models.Appointment{},
		statuses:     map[string]string{},
	}
}

func (f *fakeAppointmentRepo) add(a *models.Appointment) *models.Appointment {
	f.nextID++
	if a.ID == "" {
		a.ID = fmt.Sprintf("a%d", f.nextID)
	}
	if a.Status == "" {
		a.Status = models.StatusScheduled
	}
	f.appointments[a.ID] = a
	return a
}

func (f *fakeAppointmentRepo) CreateIfNoConflict(ctx context.Context, appointment *models.Appointment) error {
	if f.conflictErr != nil {
		return f.conflictErr
	}
	f.add(appointment)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	a, ok := f.appointments[id]
	if !ok {
		return apperr.New(apperr.NotFound, "Appointment not found")
	}
	a.Status = status
	f.statuses[id] = status
	return nil
}

func (f *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListScheduledForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Status == models.StatusScheduled {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListForDoctorOnDate(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListWindow(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return f.window, nil
}

type fakeReminderRepo struct {
	mu    sync.Mutex
	tasks map[string]*models.ReminderTask
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{tasks: map[string]*models.ReminderTask{}}
}

func reminderKey(appointmentID string, offsetDays int) string {
	return fmt.Sprintf("%s/%d", appointmentID, offsetDays)
}

func (f *fakeReminderRepo) Ensure(ctx context.Context, appointmentID string, offsetDays int, fireAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := reminderKey(appointmentID, offsetDays)
	if _, ok := f.tasks[key]; ok {
		return false, nil
	}
	f.tasks[key] = &models.ReminderTask{
		AppointmentID: appointmentID,
		OffsetDays:    offsetDays,
		FireAt:        fireAt,
	}
	return true, nil
}

func (f *fakeReminderRepo) ListPending(ctx context.Context, from, to time.Time) ([]models.ReminderTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ReminderTask
	for _, task := range f.tasks {
		if !task.Sent && !task.FireAt.Before(from) && task.FireAt.Before(to) {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) MarkSent(ctx context.Context, appointmentID string, offsetDays int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[reminderKey(appointmentID, offsetDays)]
	if !ok || task.Sent {
		return false, nil
	}
	task.Sent = true
	return true, nil
}

func (f *fakeReminderRepo) sent(appointmentID string, offsetDays int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[reminderKey(appointmentID, offsetDays)]
	return ok && task.Sent
}

func (f *fakeReminderRepo) has(appointmentID string, offsetDays int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tasks[reminderKey(appointmentID, offsetDays)]
	return ok
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeSender struct {
	mu   sync.Mutex
	mail []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.mail = append(f.mail, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeSender) sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMail, len(f.mail))
	copy(out, f.mail)
	return out
}

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (f *fakeCodeStore) Set(ctx context.Context, variant, email, code string) error {
	f.codes[variant+":"+email] = code
	return nil
}

func (f *fakeCodeStore) Get(ctx context.Context, variant, email string) (string, error) {
	return f.codes[variant+":"+email], nil
}

func (f *fakeCodeStore) Delete(ctx context.Context, variant, email string) error {
	delete(f.codes, variant+":"+email)
	return nil
}
