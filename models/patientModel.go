package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID           string         `gorm:"primaryKey;column:id" json:"_id"`
	FirstName    string         `gorm:"column:first_name;not null" json:"firstName"`
	LastName     string         `gorm:"column:last_name;not null;index" json:"lastName"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password     string         `gorm:"column:password;not null" json:"-"`
	DOB          string         `gorm:"column:dob" json:"dob,omitempty"`
	BloodGroup   string         `gorm:"column:blood_group" json:"bloodGroup,omitempty"`
	Phone        string         `gorm:"column:phone" json:"phone,omitempty"`
	ProfileImage string         `gorm:"column:profile_image" json:"profileImage,omitempty"`
	City         string         `gorm:"column:city" json:"city,omitempty"`
	State        string         `gorm:"column:state" json:"state,omitempty"`
	Country      string         `gorm:"column:country" json:"country,omitempty"`
	ZipCode      string         `gorm:"column:zip_code" json:"zipCode,omitempty"`
	Address      string         `gorm:"column:address" json:"address,omitempty"`
	Location     string         `gorm:"column:location" json:"location,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	HealthData   []HealthRecord `gorm:"foreignKey:PatientID;references:ID" json:"healthData,omitempty"`
	Bookmarks    []Bookmark     `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// HealthRecord is one entry in a patient's chronological health log.
// Entries are appended as submitted; no ordering is enforced.
type HealthRecord struct {
	ID            uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID     string   `gorm:"column:patient_id;not null;index" json:"-"`
	Date          string   `gorm:"column:date;not null" json:"date"`
	BMI           *float64 `gorm:"column:bmi" json:"bmi,omitempty"`
	HeartRate     *float64 `gorm:"column:heart_rate" json:"heartRate,omitempty"`
	Weight        *float64 `gorm:"column:weight" json:"weight,omitempty"`
	FBCStatus     string   `gorm:"column:fbc_status" json:"fbcStatus,omitempty"`
	BodyTemp      *float64 `gorm:"column:body_temp" json:"bodyTemp,omitempty"`
	BloodPressure string   `gorm:"column:blood_pressure" json:"bloodPressure,omitempty"`
	GlucoseLevel  *float64 `gorm:"column:glucose_level" json:"glucoseLevel,omitempty"`
}

func (HealthRecord) TableName() string {
	return "health_record"
}

// Bookmark is a weak reference from a patient to a doctor. The pair is
// unique so toggling is a pure add/remove.
type Bookmark struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string `gorm:"column:patient_id;not null;index;uniqueIndex:idx_patient_doctor_bookmark" json:"patientId"`
	DoctorID  string `gorm:"column:doctor_id;not null;uniqueIndex:idx_patient_doctor_bookmark" json:"doctorId"`
}

func (Bookmark) TableName() string {
	return "bookmark"
}
