package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/tcasystem/internal/app/controllers"
	appMigrations "github.com/yigit/tcasystem/internal/app/migrations"
	appRepos "github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/app/repositories/memory"
	"github.com/yigit/tcasystem/internal/app/repositories/mongodb"
	appRoutes "github.com/yigit/tcasystem/internal/app/routes"
	appServices "github.com/yigit/tcasystem/internal/app/services"
	"github.com/yigit/tcasystem/internal/config"
	"github.com/yigit/tcasystem/internal/db"
	appMiddleware "github.com/yigit/tcasystem/internal/middleware"
	pkgAuth "github.com/yigit/tcasystem/internal/pkg/auth"
	"github.com/yigit/tcasystem/internal/pkg/email"
	"github.com/yigit/tcasystem/internal/pkg/helpers"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"github.com/yigit/tcasystem/internal/pkg/validation"
	"github.com/yigit/tcasystem/internal/seed"
)

// Storage is an opened storage backend with its repositories
type Storage struct {
	Driver string
	Repos  *appRepos.Repositories
	close  func()
}

// Close releases the backend connections
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	Notifier         *email.Notifier
	TeacherService   *appServices.TeacherService
	CourseService    *appServices.CourseService
	AdminService     *appServices.AdminService
	AllotmentService appServices.AllotmentService
	ReportService    *appServices.ReportService
	Controllers      appRoutes.Controllers
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	lgr.Info().Str("logLevel", logger.ParseLevel(cfg.Logging.Level).String()).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend and prepares its schema
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var storage *Storage
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, err
		}

		storage = &Storage{Driver: config.StoragePostgres, Repos: appRepos.NewRepositories(database.Pool), close: database.Close}

	case config.StorageMongo:
		lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connecting to MongoDB...")
		mongoDB, err := db.NewMongoDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
			return nil, err
		}

		if err := mongodb.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			mongoDB.Close()
			return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		lgr.Info().Msg("MongoDB indexes ensured.")

		storage = &Storage{Driver: config.StorageMongo, Repos: mongodb.NewRepositories(mongoDB.Database), close: mongoDB.Close}

	case config.StorageMemory:
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		storage = &Storage{Driver: config.StorageMemory, Repos: memory.NewRepositories()}

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Seed.DefaultCourses {
		if err := seed.CreateDefaultData(ctx, storage.Repos.Courses, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupEmailSender selects the delivery provider
func SetupEmailSender(cfg *config.Config, lgr zerolog.Logger) email.Sender {
	switch cfg.Email.Provider {
	case config.EmailProviderSendGrid:
		lgr.Info().Msg("Email delivery through SendGrid")
		return email.NewSendGridSender(cfg.SendGrid.APIKey, cfg.Email.FromName, cfg.EmailSender(), lgr)
	case config.EmailProviderSMTP:
		lgr.Info().Str("host", cfg.SMTP.Host).Int("port", cfg.SMTP.Port).Msg("Email delivery through SMTP")
		return email.NewSMTPSender(email.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.EmailSender(),
			UseTLS:    cfg.SMTP.UseTLS,
		}, lgr)
	default:
		lgr.Warn().Msg("Emails are logged, not delivered")
		return email.NewLogSender(lgr)
	}
}

// BuildDependencies initializes services, controllers and middleware on top
// of the opened repositories.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, sender email.Sender, storageDriver string, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Notifier = email.NewNotifier(sender, cfg.Email.FromName, cfg.FrontendURL, logger.WithComponent("notifier"))

	admins := make([]appServices.AdminCredential, len(cfg.Admin.Credentials))
	for i, c := range cfg.Admin.Credentials {
		admins[i] = appServices.AdminCredential{Email: c.Email, Password: c.Password}
	}

	resetTTL := helpers.ParseDuration(cfg.PasswordReset.TokenExpiration, 15*time.Minute)
	deps.TeacherService = appServices.NewTeacherService(repos, deps.JWTService, deps.Notifier, resetTTL, logger.WithComponent("teachers"))
	deps.CourseService = appServices.NewCourseService(repos, logger.WithComponent("courses"))
	deps.AdminService = appServices.NewAdminService(admins, deps.JWTService, logger.WithComponent("admin"))
	deps.AllotmentService = appServices.NewAllotmentService(repos, logger.WithComponent("allotments"))
	deps.ReportService = appServices.NewReportService(repos, logger.WithComponent("reports"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Index:     appControllers.NewIndexController(storageDriver),
		Teacher:   appControllers.NewTeacherController(deps.TeacherService, lgr),
		Course:    appControllers.NewCourseController(deps.CourseService, lgr),
		Admin:     appControllers.NewAdminController(deps.AdminService, lgr),
		Allotment: appControllers.NewAllotmentController(deps.AllotmentService, lgr),
		Report:    appControllers.NewReportController(deps.ReportService, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.WithComponent("http")))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	appRoutes.SetupSwagger(router)
	return router, nil
}

// WithCORS wraps the router with the configured cross-origin policy
func WithCORS(cfg *config.Config, router http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(router)
}
