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
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DoctorCacheExpiry = 24 * time.Hour

type DoctorRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	List(ctx context.Context, query *DoctorQuery) ([]models.Doctor, int, error)
	Update(ctx context.Context, id string, fields map[string]interface{}, specializations []string, clinicImages []string) error
	ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error)
	ReplaceAll(ctx context.Context, seeds []models.DoctorSeed) ([]models.Doctor, error)
}

type doctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) DoctorRepository {
	return &doctorRepository{db: db, cache: cache}
}

func (r *doctorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.invalidateList(ctx)
}

// GetByEmail returns the doctor including the password hash, for
// credential checks only. Returns nil when the email is unknown.
func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = r.db.WithContext(ctx).
		Omit("password").
		Preload("Specializations").
		Preload("ClinicImages").
		First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	doctor.Password = ""

	doctorJSON, err := json.Marshal(doctor)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}

	return &doctor, nil
}

// GetAll returns the public doctor list, cached as one blob.
func (r *doctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	const cacheKey = "doctors_cache"
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	err = r.db.WithContext(ctx).
		Omit("password").
		Preload("Specializations").
		Preload("ClinicImages").
		Order("created_at").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}
	for i := range doctors {
		doctors[i].Password = ""
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}

	return doctors, nil
}

// List runs the typed filter query and returns the requested page plus
// the total page count. A page beyond the last is a validation failure.
func (r *doctorRepository) List(ctx context.Context, query *DoctorQuery) ([]models.Doctor, int, error) {
	base := query.apply(r.db.WithContext(ctx).Model(&models.Doctor{}))

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	pages := int(math.Ceil(float64(count) / float64(DoctorPageSize)))

	skip := (query.Page - 1) * DoctorPageSize
	if query.Page > 1 && skip >= int(count) {
		return nil, 0, apperr.New(apperr.Validation, "This page does not exist")
	}

	tx := base.Session(&gorm.Session{}).
		Omit("password").
		Preload("Specializations").
		Preload("ClinicImages")
	for _, column := range query.SortColumns {
		tx = tx.Order(column)
	}

	var doctors []models.Doctor
	if err := tx.Offset(skip).Limit(DoctorPageSize).Find(&doctors).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	return doctors, pages, nil
}

// Update applies only the supplied fields, and replaces specializations
// and clinic images when the caller provides them (nil leaves them alone).
func (r *doctorRepository) Update(ctx context.Context, id string, fields map[string]interface{}, specializations []string, clinicImages []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.Select("id").First(&doctor, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Doctor not found")
			}
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&models.Doctor{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if specializations != nil {
			if err := tx.Where("doctor_id = ?", id).Delete(&models.Specialization{}).Error; err != nil {
				return err
			}
			for _, name := range specializations {
				if err := tx.Create(&models.Specialization{DoctorID: id, Name: name}).Error; err != nil {
					return err
				}
			}
		}
		if clinicImages != nil {
			if err := tx.Where("doctor_id = ?", id).Delete(&models.ClinicImage{}).Error; err != nil {
				return err
			}
			for _, url := range clinicImages {
				if err := tx.Create(&models.ClinicImage{DoctorID: id, URL: url}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return r.invalidate(ctx, id)
}

// ResolveDoctor backs the authentication gate; password is stripped.
func (r *doctorRepository) ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return r.GetByID(ctx, id)
}

// ReplaceAll deletes every doctor and inserts the seed data. Seeding only.
func (r *doctorRepository) ReplaceAll(ctx context.Context, seeds []models.DoctorSeed) ([]models.Doctor, error) {
	inserted := make([]models.Doctor, 0, len(seeds))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Specialization{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.ClinicImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Doctor{}).Error; err != nil {
			return err
		}
		for _, seed := range seeds {
			doctor := seed.Doctor
			doctor.ID = uuid.New().String()
			hashed, err := utils.HashPassword(seed.Password)
			if err != nil {
				return err
			}
			doctor.Password = hashed
			for _, name := range seed.Specializations {
				doctor.Specializations = append(doctor.Specializations, models.Specialization{Name: name})
			}
			for _, url := range seed.ClinicImages {
				doctor.ClinicImages = append(doctor.ClinicImages, models.ClinicImage{URL: url})
			}
			if err := tx.Create(&doctor).Error; err != nil {
				return err
			}
			doctor.Password = ""
			inserted = append(inserted, doctor)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import doctors: %w", err)
	}
	if err := r.invalidateList(ctx); err != nil {
		log.Printf("Failed to invalidate doctor caches: %v", err)
	}
	return inserted, nil
}

func (r *doctorRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.doctorCacheKey(id)); err != nil {
		return err
	}
	return r.invalidateList(ctx)
}

func (r *doctorRepository) invalidateList(ctx context.Context) error {
	if err := r.cache.Delete(ctx, "doctors_cache"); err != nil {
		return err
	}
	return r.cache.DeleteAll(ctx, "doctor_cache:*")
}

func (r *doctorRepository) doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
