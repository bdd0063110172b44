package repositories

import (
	"CareConnect/apperr"
	"CareConnect/cache"
	"CareConnect/models"
	"CareConnect/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PatientCacheExpiry = 24 * time.Hour

type PatientRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, patient *models.Patient) error
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetProfile(ctx context.Context, id string) (*models.Patient, []models.Doctor, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	ToggleBookmark(ctx context.Context, patientID, doctorID string) (bool, error)
	AppendHealthRecord(ctx context.Context, record *models.HealthRecord) error
	ResolvePatient(ctx context.Context, id string) (*models.Patient, error)
	ReplaceAll(ctx context.Context, seeds []models.PatientSeed) ([]models.Patient, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

func (r *patientRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByEmail returns the patient including the password hash, for
// credential checks only. Returns nil when the email is unknown.
func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.patientCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = r.db.WithContext(ctx).
		Omit("password").
		Preload("HealthData").
		First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	patient.Password = ""

	patientJSON, err := json.Marshal(patient)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}

	return &patient, nil
}

// GetProfile loads the patient together with the bookmarked doctors.
func (r *patientRepository) GetProfile(ctx context.Context, id string) (*models.Patient, []models.Doctor, error) {
	patient, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, nil
	}

	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).Where("patient_id = ?", id).Order("id").Find(&bookmarks).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		return patient, []models.Doctor{}, nil
	}

	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.DoctorID)
	}
	var doctors []models.Doctor
	err = r.db.WithContext(ctx).
		Omit("password").
		Preload("Specializations").
		Where("id IN ?", ids).
		Find(&doctors).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bookmarked doctors: %w", err)
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	return patient, doctors, nil
}

// Update applies only the supplied fields; everything else is untouched.
func (r *patientRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "Patient not found")
	}
	return r.invalidate(ctx, id)
}

// ToggleBookmark removes the bookmark when present and adds it when
// absent. Returns true when the doctor ended up bookmarked.
func (r *patientRepository) ToggleBookmark(ctx context.Context, patientID, doctorID string) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).First(&existing).Error
		switch {
		case err == nil:
			added = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			added = true
			return tx.Create(&models.Bookmark{PatientID: patientID, DoctorID: doctorID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return added, r.invalidate(ctx, patientID)
}

func (r *patientRepository) AppendHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to append health record: %w", err)
	}
	return r.invalidate(ctx, record.PatientID)
}

// ResolvePatient backs the authentication gate; password is stripped.
func (r *patientRepository) ResolvePatient(ctx context.Context, id string) (*models.Patient, error) {
	return r.GetByID(ctx, id)
}

// ReplaceAll deletes every patient and inserts the seed data. Seeding only.
func (r *patientRepository) ReplaceAll(ctx context.Context, seeds []models.PatientSeed) ([]models.Patient, error) {
	inserted := make([]models.Patient, 0, len(seeds))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.HealthRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Patient{}).Error; err != nil {
			return err
		}
		for _, seed := range seeds {
			patient := seed.Patient
			patient.ID = uuid.New().String()
			hashed, err := utils.HashPassword(seed.Password)
			if err != nil {
				return err
			}
			patient.Password = hashed
			if err := tx.Create(&patient).Error; err != nil {
				return err
			}
			patient.Password = ""
			inserted = append(inserted, patient)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import patients: %w", err)
	}
	if err := r.cache.DeleteAll(ctx, "patient_cache:*"); err != nil {
		log.Printf("Failed to invalidate patient caches: %v", err)
	}
	return inserted, nil
}

func (r *patientRepository) invalidate(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, r.patientCacheKey(id))
}

func (r *patientRepository) patientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}
