package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"healthcheck/internal/handlers"
	"healthcheck/internal/middleware"
	"healthcheck/internal/models"
	"healthcheck/internal/repositories"
	"healthcheck/internal/services"
	"healthcheck/pkg/rabbitmq"
	"healthcheck/views"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // empty: local SQLite file
	viper.SetDefault("RABBITMQ_URL", "") // empty: measurement events disabled
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Database ---
	// The store is the one dependency the app refuses to start without.
	// TranslateError makes unique index violations detectable as
	// gorm.ErrDuplicatedKey across drivers.
	var dialector gorm.Dialector
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open("healthcheck.db")
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.WeightRecord{}, &models.VitalsRecord{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, measurement events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	measurementRepo := repositories.NewGORMMeasurementRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	healthService := services.NewHealthService(measurementRepo, publisher)

	// --- Initialize Fiber App ---
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// --- Middleware ---
	app.Use(helmet.New()) // Security headers
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))
	app.Use(logger.New())  // Request logger
	app.Use(recover.New()) // Per-request panic recovery, never a crash
	app.Static("/", "./public")

	// Server-side session store: sessions live for 24 hours and slide
	// forward on every authenticated request.
	store := session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store)
	healthHandler := handlers.NewHealthHandler(healthService)

	// --- Routes ---
	// Public pages and the register/login/logout flow
	authHandler.RegisterRoutes(app)

	// Liveness endpoint. Registered before the protected group: the
	// session middleware guards everything registered after it.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Protected pages behind the session middleware
	protected := app.Group("", middleware.SessionAuth(store))
	healthHandler.RegisterRoutes(protected)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for measurement events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received measurement event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeMeasurementEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
