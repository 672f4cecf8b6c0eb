package repositories

import "healthcheck/internal/models"

// MeasurementRepository defines the interface for measurement data
// access. Records are append-only; history queries return records
// newest first.
type MeasurementRepository interface {
	CreateWeight(record *models.WeightRecord) error
	CreateVitals(record *models.VitalsRecord) error
	WeightHistory(userID string) ([]models.WeightRecord, error)
	VitalsHistory(userID string) ([]models.VitalsRecord, error)
}
