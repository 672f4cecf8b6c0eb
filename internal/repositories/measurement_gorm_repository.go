package repositories

import (
	"fmt"

	"healthcheck/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMeasurementRepository is a GORM implementation of MeasurementRepository.
type GORMMeasurementRepository struct {
	db *gorm.DB
}

// NewGORMMeasurementRepository creates a new instance of GORMMeasurementRepository.
func NewGORMMeasurementRepository(db *gorm.DB) *GORMMeasurementRepository {
	return &GORMMeasurementRepository{
		db: db,
	}
}

// CreateWeight inserts a new weight record.
func (r *GORMMeasurementRepository) CreateWeight(record *models.WeightRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create weight record: %w", err)
	}
	return nil
}

// CreateVitals inserts a new vitals record.
func (r *GORMMeasurementRepository) CreateVitals(record *models.VitalsRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create vitals record: %w", err)
	}
	return nil
}

// WeightHistory returns the user's weight records, newest first.
func (r *GORMMeasurementRepository) WeightHistory(userID string) ([]models.WeightRecord, error) {
	var records []models.WeightRecord
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get weight history for user %s: %w", userID, err)
	}
	return records, nil
}

// VitalsHistory returns the user's vitals records, newest first.
func (r *GORMMeasurementRepository) VitalsHistory(userID string) ([]models.VitalsRecord, error) {
	var records []models.VitalsRecord
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get vitals history for user %s: %w", userID, err)
	}
	return records, nil
}
