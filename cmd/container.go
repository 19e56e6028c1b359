package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redlaboral/portal/internal/ai/embeddings"
	"github.com/redlaboral/portal/internal/ai/resumeparser"
	"github.com/redlaboral/portal/marketplace/account/accountapi"
	"github.com/redlaboral/portal/marketplace/account/accountinfra"
	"github.com/redlaboral/portal/marketplace/account/accountsrv"
	"github.com/redlaboral/portal/marketplace/alert/alertapi"
	"github.com/redlaboral/portal/marketplace/alert/alertinfra"
	"github.com/redlaboral/portal/marketplace/alert/alertsrv"
	"github.com/redlaboral/portal/marketplace/application/applicationapi"
	"github.com/redlaboral/portal/marketplace/application/applicationinfra"
	"github.com/redlaboral/portal/marketplace/application/applicationsrv"
	"github.com/redlaboral/portal/marketplace/candidate/candidateapi"
	"github.com/redlaboral/portal/marketplace/candidate/candidateinfra"
	"github.com/redlaboral/portal/marketplace/candidate/candidatesrv"
	"github.com/redlaboral/portal/marketplace/company/companyapi"
	"github.com/redlaboral/portal/marketplace/company/companyinfra"
	"github.com/redlaboral/portal/marketplace/company/companysrv"
	"github.com/redlaboral/portal/marketplace/newsletter/newsletterapi"
	"github.com/redlaboral/portal/marketplace/newsletter/newsletterinfra"
	"github.com/redlaboral/portal/marketplace/newsletter/newslettersrv"
	"github.com/redlaboral/portal/marketplace/notification/notificationapi"
	"github.com/redlaboral/portal/marketplace/notification/notificationinfra"
	"github.com/redlaboral/portal/marketplace/notification/notificationsrv"
	"github.com/redlaboral/portal/marketplace/offer/offerapi"
	"github.com/redlaboral/portal/marketplace/offer/offerinfra"
	"github.com/redlaboral/portal/marketplace/offer/offersrv"
	"github.com/redlaboral/portal/marketplace/service/serviceapi"
	"github.com/redlaboral/portal/marketplace/service/serviceinfra"
	"github.com/redlaboral/portal/marketplace/service/servicesrv"
	"github.com/redlaboral/portal/pkg/fsx"
	"github.com/redlaboral/portal/pkg/fsx/fsxs3"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/logx"
	"github.com/redlaboral/portal/pkg/mailx"
)

const (
	mailWorkers        = 4
	mailQueueSize      = 256
	mailSendTimeout    = 10 * time.Second
	accessTokenTTL     = 24 * time.Hour
	jwtIssuer          = "redlaboral"
	defaultBaseURL     = "https://www.redlaboral.cl"
	bcryptCost         = 12
	uploadPathPrefix   = "uploads"
	visitFlushInterval = time.Minute
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	S3Client   *s3.Client
	FileSystem fsx.FileSystem
	Mail       *mailx.Dispatcher
	Visits     *offerinfra.VisitFlusher

	// Auth
	TokenService   auth.TokenService
	AuthMiddleware *auth.Middleware

	// Domain Services
	AccountService      *accountsrv.AccountService
	CompanyService      *companysrv.CompanyService
	OfferService        *offersrv.OfferService
	CandidateService    *candidatesrv.CandidateService
	ApplicationService  *applicationsrv.ApplicationService
	ServiceService      *servicesrv.ServiceService
	AlertService        *alertsrv.AlertService
	NotificationService *notificationsrv.NotificationService
	NewsletterService   *newslettersrv.NewsletterService

	// API Handlers
	AccountHandlers      *accountapi.Handlers
	CompanyHandlers      *companyapi.Handlers
	OfferHandlers        *offerapi.Handlers
	CandidateHandlers    *candidateapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	ServiceHandlers      *serviceapi.Handlers
	AlertHandlers        *alertapi.Handlers
	NotificationHandlers *notificationapi.Handlers
	NewsletterHandlers   *newsletterapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection (offer visit counters)
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 (photos, CVs, logos, listing images)
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, uploadPathPrefix)

	// 4. Outgoing mail (welcome emails, offer alerts)
	mailer := mailx.NewSMTPMailer(mailx.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_FROM"),
	})
	c.Mail = mailx.NewDispatcher(mailer, mailWorkers, mailQueueSize, mailSendTimeout)

	// 5. Token Service
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTTokenService(jwtSecret, jwtIssuer, accessTokenTTL)
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	openaiKey := os.Getenv("OPENAI_API_KEY")

	// --- Repositories ---
	userRepo := accountinfra.NewPostgresUserRepository(c.DB)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	ratingRepo := companyinfra.NewPostgresRatingRepository(c.DB)
	offerRepo := offerinfra.NewPostgresOfferRepository(c.DB)
	favoriteRepo := offerinfra.NewPostgresFavoriteRepository(c.DB)
	questionRepo := offerinfra.NewPostgresQuestionRepository(c.DB)
	reportRepo := offerinfra.NewPostgresReportRepository(c.DB)
	visitCounter := offerinfra.NewRedisVisitCounter(c.Redis, offerRepo)
	c.Visits = offerinfra.NewVisitFlusher(c.Redis, offerRepo, visitFlushInterval)
	c.Visits.Start()
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	serviceRepo := serviceinfra.NewPostgresServiceRepository(c.DB)
	alertRepo := alertinfra.NewPostgresAlertRepository(c.DB)
	notificationRepo := notificationinfra.NewPostgresNotificationRepository(c.DB)
	subscriberRepo := newsletterinfra.NewPostgresSubscriberRepository(c.DB)

	// --- AI helpers ---
	embedder := embeddings.NewEmbeddingsGenerator(openaiKey)
	cvParser := resumeparser.NewResumeParser(openaiKey)

	// --- Auth primitives ---
	passwords := auth.NewBcryptPasswordService(bcryptCost)

	// --- Domain Services ---
	c.NotificationService = notificationsrv.NewNotificationService(notificationRepo)
	c.AlertService = alertsrv.NewAlertService(alertRepo, c.Mail, baseURL)
	c.AccountService = accountsrv.NewAccountService(userRepo, passwords, c.TokenService, c.Mail)
	c.CompanyService = companysrv.NewCompanyService(companyRepo, ratingRepo, c.FileSystem)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo, companyRepo, c.FileSystem, cvParser)
	c.OfferService = offersrv.NewOfferService(
		offerRepo,
		visitCounter,
		favoriteRepo,
		questionRepo,
		reportRepo,
		candidateRepo,
		c.AlertService,
		c.NotificationService,
		embedder,
		c.FileSystem,
	)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		offerRepo,
		candidateRepo,
		userRepo,
		c.NotificationService,
	)
	c.ServiceService = servicesrv.NewServiceService(serviceRepo, c.FileSystem)
	c.NewsletterService = newslettersrv.NewNewsletterService(subscriberRepo)

	// --- Handlers ---
	c.AccountHandlers = accountapi.NewHandlers(c.AccountService)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.OfferHandlers = offerapi.NewHandlers(c.OfferService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.ServiceHandlers = serviceapi.NewHandlers(c.ServiceService)
	c.AlertHandlers = alertapi.NewHandlers(c.AlertService)
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService)
	c.NewsletterHandlers = newsletterapi.NewHandlers(c.NewsletterService)
}

// Close releases every long-lived resource the container owns. Pending
// alert emails are drained before the mail dispatcher stops.
func (c *Container) Close() {
	c.Visits.Stop()
	c.Mail.Stop()
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis client: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
