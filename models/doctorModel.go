package models

import (
	"time"
)

// Doctor model
type Doctor struct {
	ID              string           `gorm:"primaryKey;column:id" json:"_id"`
	FirstName       string           `gorm:"column:first_name;not null" json:"firstName"`
	LastName        string           `gorm:"column:last_name;not null;index" json:"lastName"`
	Email           string           `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password        string           `gorm:"column:password;not null" json:"-"`
	Phone           string           `gorm:"column:phone" json:"phone,omitempty"`
	Bio             string           `gorm:"column:bio" json:"bio,omitempty"`
	Gender          string           `gorm:"column:gender" json:"gender,omitempty"`
	ProfileImage    string           `gorm:"column:profile_image" json:"profileImage,omitempty"`
	ExperienceYears int              `gorm:"column:experience_years" json:"experienceYears"`
	ConsultationFee float64          `gorm:"column:consultation_fee" json:"consultationFee"`
	AverageRating   float64          `gorm:"column:average_rating" json:"averageRating"`
	TotalRatings    int              `gorm:"column:total_ratings" json:"totalRatings"`
	City            string           `gorm:"column:city" json:"city,omitempty"`
	Address         string           `gorm:"column:address" json:"address,omitempty"`
	ClinicName      string           `gorm:"column:clinic_name" json:"clinicName,omitempty"`
	ClinicAddress   string           `gorm:"column:clinic_address" json:"clinicAddress,omitempty"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	Specializations []Specialization `gorm:"foreignKey:DoctorID;references:ID" json:"specializations,omitempty"`
	ClinicImages    []ClinicImage    `gorm:"foreignKey:DoctorID;references:ID" json:"clinicImages,omitempty"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Specialization is a named tag on a doctor
type Specialization struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID string `gorm:"column:doctor_id;not null;index" json:"-"`
	Name     string `gorm:"column:name;not null;index" json:"name"`
}

func (Specialization) TableName() string {
	return "specialization"
}

// ClinicImage is one uploaded image reference on a doctor's clinic info
type ClinicImage struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID string `gorm:"column:doctor_id;not null;index" json:"-"`
	URL      string `gorm:"column:url;not null" json:"url"`
}

func (ClinicImage) TableName() string {
	return "clinic_image"
}
