package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"healthcheck/internal/health"
	"healthcheck/internal/models"
	"healthcheck/internal/repositories"

	"github.com/google/uuid"
)

// ErrStorage indicates that the store could not be read or written.
// For measurement recording it is non-fatal: the classified record is
// still returned alongside it so the result can be shown to the user.
var ErrStorage = errors.New("storage failure")

// EventPublisher publishes domain events to a message broker. A nil
// publisher disables eventing.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// HealthService handles recording classified measurements and reading
// them back as history.
type HealthService struct {
	measurementRepo repositories.MeasurementRepository
	events          EventPublisher
}

// NewHealthService creates a new HealthService. events may be nil.
func NewHealthService(measurementRepo repositories.MeasurementRepository, events EventPublisher) *HealthService {
	return &HealthService{
		measurementRepo: measurementRepo,
		events:          events,
	}
}

// RecordWeight computes the BMI, classifies it by age band, and
// persists a new weight record for the user. Persistence is best
// effort: on a store failure the populated record is still returned
// together with ErrStorage so callers can show the result anyway.
func (s *HealthService) RecordWeight(userID, name string, age int, heightCm, weightKg float64) (*models.WeightRecord, error) {
	bmi := health.BMI(heightCm, weightKg)
	record := &models.WeightRecord{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		Age:            age,
		HeightCm:       heightCm,
		WeightKg:       weightKg,
		BMI:            bmi,
		WeightCategory: health.BMICategory(bmi, age),
		CreatedAt:      time.Now(),
	}

	if err := s.measurementRepo.CreateWeight(record); err != nil {
		log.Printf("Failed to save weight record for user %s: %v", userID, err)
		return record, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.publishRecorded("weight", record.ID, userID)
	return record, nil
}

// RecordVitals classifies the blood pressure and SpO2 readings
// independently and persists a new vitals record for the user, with
// the same best-effort persistence as RecordWeight.
func (s *HealthService) RecordVitals(userID, name string, age, systolic, diastolic, spo2 int) (*models.VitalsRecord, error) {
	record := &models.VitalsRecord{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Age:           age,
		Systolic:      systolic,
		Diastolic:     diastolic,
		BloodCategory: health.BloodPressureCategory(systolic, diastolic),
		SpO2:          spo2,
		SpO2Category:  health.SpO2Category(spo2),
		CreatedAt:     time.Now(),
	}

	if err := s.measurementRepo.CreateVitals(record); err != nil {
		log.Printf("Failed to save vitals record for user %s: %v", userID, err)
		return record, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.publishRecorded("vitals", record.ID, userID)
	return record, nil
}

// History returns the user's weight and vitals records, each newest
// first. The two queries are independent: if one fails, its half comes
// back empty and ErrStorage is reported, while the other half is still
// returned. An empty history is not an error.
func (s *HealthService) History(userID string) ([]models.WeightRecord, []models.VitalsRecord, error) {
	var failed bool

	weights, err := s.measurementRepo.WeightHistory(userID)
	if err != nil {
		log.Printf("Failed to load weight history for user %s: %v", userID, err)
		weights = nil
		failed = true
	}

	vitals, err := s.measurementRepo.VitalsHistory(userID)
	if err != nil {
		log.Printf("Failed to load vitals history for user %s: %v", userID, err)
		vitals = nil
		failed = true
	}

	if failed {
		return weights, vitals, fmt.Errorf("history partially unavailable: %w", ErrStorage)
	}
	return weights, vitals, nil
}

// publishRecorded emits a measurement.recorded event. Publishing is
// best effort: a missing publisher or a broker error never fails the
// request that recorded the measurement.
func (s *HealthService) publishRecorded(kind, recordID, userID string) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]string{
		"kind":      kind,
		"record_id": recordID,
		"user_id":   userID,
	})
	if err != nil {
		log.Printf("Failed to marshal measurement event: %v", err)
		return
	}

	if err := s.events.Publish("measurement", "measurement.recorded", body); err != nil {
		log.Printf("Warning: Failed to publish measurement event for record %s: %v", recordID, err)
	}
}
