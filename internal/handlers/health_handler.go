package handlers

import (
	"errors"
	"fmt"
	"log"

	"healthcheck/internal/middleware"
	"healthcheck/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles the protected measurement pages: the check
// forms, their results, and the history view. All routes assume
// middleware.SessionAuth has populated the request Locals.
type HealthHandler struct {
	healthService *services.HealthService
	validate      *validator.Validate
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the protected routes. The router passed in
// must already carry the session middleware.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/index", h.HandleHome)
	router.Get("/check-weight", h.HandleCheckWeightPage)
	router.Post("/check-weight", h.HandleCheckWeight)
	router.Get("/check-vitals", h.HandleCheckVitalsPage)
	router.Post("/check-vitals", h.HandleCheckVitals)
	router.Get("/history", h.HandleHistory)
}

// HandleHome renders the signed-in landing page.
func (h *HealthHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"UserName": c.Locals(middleware.SessionKeyUserName),
	})
}

// HandleCheckWeightPage renders the weight check form.
func (h *HealthHandler) HandleCheckWeightPage(c *fiber.Ctx) error {
	return c.Render("check-weight", fiber.Map{
		"UserName": c.Locals(middleware.SessionKeyUserName),
	})
}

// WeightForm represents the URL-encoded weight check form.
type WeightForm struct {
	Name     string  `form:"name" validate:"required,min=2,max=255"`
	Age      int     `form:"age" validate:"required,gt=0"`
	HeightCm float64 `form:"height" validate:"required,gt=0"`
	WeightKg float64 `form:"weight" validate:"required,gt=0"`
}

// HandleCheckWeight classifies the submitted measurement and records it
// for the signed-in user. A storage failure does not hide the result:
// the computed BMI and category are rendered regardless, with a notice
// that the record was not saved.
func (h *HealthHandler) HandleCheckWeight(c *fiber.Ctx) error {
	var form WeightForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing weight form: %v", err)
		return c.Render("check-weight", fiber.Map{
			"Errors":   []string{"Invalid form submission"},
			"UserName": c.Locals(middleware.SessionKeyUserName),
		})
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("check-weight", fiber.Map{
			"Errors":   validationMessages(err),
			"UserName": c.Locals(middleware.SessionKeyUserName),
		})
	}

	userID := c.Locals(middleware.SessionKeyUserID).(string)
	record, err := h.healthService.RecordWeight(userID, form.Name, form.Age, form.HeightCm, form.WeightKg)
	saveFailed := errors.Is(err, services.ErrStorage)
	if err != nil && !saveFailed {
		log.Printf("Unexpected error recording weight for user %s: %v", userID, err)
	}

	return c.Render("result-weight", fiber.Map{
		"Name":       record.Name,
		"Age":        record.Age,
		"BMI":        fmt.Sprintf("%.2f", record.BMI),
		"Category":   record.WeightCategory,
		"SaveFailed": saveFailed,
	})
}

// HandleCheckVitalsPage renders the vitals check form.
func (h *HealthHandler) HandleCheckVitalsPage(c *fiber.Ctx) error {
	return c.Render("check-vitals", fiber.Map{
		"UserName": c.Locals(middleware.SessionKeyUserName),
	})
}

// VitalsForm represents the URL-encoded vitals check form.
type VitalsForm struct {
	Name      string `form:"name" validate:"required,min=2,max=255"`
	Age       int    `form:"age" validate:"required,gt=0"`
	Systolic  int    `form:"systolic" validate:"required,gt=0"`
	Diastolic int    `form:"diastolic" validate:"required,gt=0"`
	SpO2      int    `form:"spo2" validate:"required,gt=0,lte=100"`
}

// HandleCheckVitals classifies blood pressure and SpO2 independently
// and records them, with the same best-effort persistence as the
// weight check.
func (h *HealthHandler) HandleCheckVitals(c *fiber.Ctx) error {
	var form VitalsForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing vitals form: %v", err)
		return c.Render("check-vitals", fiber.Map{
			"Errors":   []string{"Invalid form submission"},
			"UserName": c.Locals(middleware.SessionKeyUserName),
		})
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("check-vitals", fiber.Map{
			"Errors":   validationMessages(err),
			"UserName": c.Locals(middleware.SessionKeyUserName),
		})
	}

	userID := c.Locals(middleware.SessionKeyUserID).(string)
	record, err := h.healthService.RecordVitals(userID, form.Name, form.Age, form.Systolic, form.Diastolic, form.SpO2)
	saveFailed := errors.Is(err, services.ErrStorage)
	if err != nil && !saveFailed {
		log.Printf("Unexpected error recording vitals for user %s: %v", userID, err)
	}

	return c.Render("result-vitals", fiber.Map{
		"Name":          record.Name,
		"Age":           record.Age,
		"Systolic":      record.Systolic,
		"Diastolic":     record.Diastolic,
		"BloodCategory": record.BloodCategory,
		"SpO2":          record.SpO2,
		"SpO2Category":  record.SpO2Category,
		"SaveFailed":    saveFailed,
	})
}

// HandleHistory renders the user's past measurements, newest first.
// If one of the two queries failed, the other half is still shown
// together with a notice.
func (h *HealthHandler) HandleHistory(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionKeyUserID).(string)

	weights, vitals, err := h.healthService.History(userID)
	storageNotice := err != nil

	return c.Render("history", fiber.Map{
		"UserName":      c.Locals(middleware.SessionKeyUserName),
		"Weights":       weights,
		"Vitals":        vitals,
		"StorageNotice": storageNotice,
	})
}
