package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redlaboral/portal/marketplace/account/accountapi"
	"github.com/redlaboral/portal/marketplace/alert/alertapi"
	"github.com/redlaboral/portal/marketplace/application/applicationapi"
	"github.com/redlaboral/portal/marketplace/candidate/candidateapi"
	"github.com/redlaboral/portal/marketplace/company/companyapi"
	"github.com/redlaboral/portal/marketplace/newsletter/newsletterapi"
	"github.com/redlaboral/portal/marketplace/notification/notificationapi"
	"github.com/redlaboral/portal/marketplace/offer/offerapi"
	"github.com/redlaboral/portal/marketplace/service/serviceapi"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting RedLaboral API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "RedLaboral API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 6. Register Routes

	// Accounts: /api/auth
	accountapi.RegisterRoutes(app, container.AccountHandlers, container.AuthMiddleware)

	// Companies and ratings: /api/companies
	companyapi.RegisterRoutes(app, container.CompanyHandlers, container.AuthMiddleware)

	// Job offers: /api/offers
	offerapi.RegisterRoutes(app, container.OfferHandlers, container.AuthMiddleware)

	// Candidate profiles: /api/candidates
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.AuthMiddleware)

	// Applications: /api/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// Freelance services: /api/services
	serviceapi.RegisterRoutes(app, container.ServiceHandlers, container.AuthMiddleware)

	// Offer alerts: /api/alerts
	alertapi.RegisterRoutes(app, container.AlertHandlers, container.AuthMiddleware)

	// Notifications: /api/notifications
	notificationapi.RegisterRoutes(app, container.NotificationHandlers, container.AuthMiddleware)

	// Newsletter: /api/newsletter
	newsletterapi.RegisterRoutes(app, container.NewsletterHandlers, container.AuthMiddleware)

	// 7. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
