package models

import "time"

// WeightRecord is one weight check submission. BMI and the category are
// computed at write time and stored with the record; they are never
// recomputed on read.
type WeightRecord struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Name           string    `json:"name" gorm:"type:varchar(255)"`
	Age            int       `json:"age"`
	HeightCm       float64   `json:"height_cm" gorm:"column:height_cm"`
	WeightKg       float64   `json:"weight_kg" gorm:"column:weight_kg"`
	BMI            float64   `json:"bmi" gorm:"column:bmi"`
	WeightCategory string    `json:"weight_category" gorm:"type:varchar(100)"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (WeightRecord) TableName() string { return "weight_data" }

// VitalsRecord is one blood pressure + SpO2 check submission. Both
// categories are classified independently at write time.
type VitalsRecord struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Name          string    `json:"name" gorm:"type:varchar(255)"`
	Age           int       `json:"age"`
	Systolic      int       `json:"systolic"`
	Diastolic     int       `json:"diastolic"`
	BloodCategory string    `json:"blood_category" gorm:"type:varchar(100)"`
	SpO2          int       `json:"spo2" gorm:"column:spo2"`
	SpO2Category  string    `json:"spo2_category" gorm:"column:spo2_category;type:varchar(100)"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (VitalsRecord) TableName() string { return "vitals_data" }
