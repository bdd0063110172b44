package routes

import (
	"CareConnect/cache"
	"CareConnect/config"
	"CareConnect/controllers"
	"CareConnect/handlers"
	"CareConnect/middlewares"
	"CareConnect/repositories"
	"CareConnect/services"
	"CareConnect/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) (http.Handler, error) {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	patientRepo := repositories.NewPatientRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)

	// Shared infrastructure
	sender := services.NewSMTPSender(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	resetCodes := utils.NewResetCodes(cache)
	uploader, err := utils.NewCloudinaryUploader(config.CloudinaryName, config.CloudinaryAPIKey, config.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}

	// Services
	patientService := services.NewPatientService(patientRepo, resetCodes, sender, config.GetJWTSecret())
	doctorService := services.NewDoctorService(doctorRepo, resetCodes, sender, config.GetJWTSecret())
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, sender)
	reminderService := services.NewReminderService(appointmentRepo, reminderRepo, sender)

	// Handlers
	patientHandler := handlers.NewPatientHandler(patientService, uploader)
	doctorHandler := handlers.NewDoctorHandler(doctorService, uploader)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, reminderService)
	importHandler := handlers.NewImportHandler(doctorRepo, patientRepo)

	// Token gates
	patientAuth := middlewares.PatientAuth(config.GetJWTSecret(), patientRepo)
	doctorAuth := middlewares.DoctorAuth(config.GetJWTSecret(), doctorRepo)

	// Register routes
	controllers.SetupPatientRoutes(router, patientHandler, patientAuth)
	controllers.SetupDoctorRoutes(router, doctorHandler, doctorAuth)
	controllers.SetupAppointmentRoutes(router, appointmentHandler, patientAuth, doctorAuth)
	controllers.SetupImportRoutes(router, importHandler)
	controllers.SetupRootRoute(router)

	return router, nil
}
