package bootstrap

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/config"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/repository"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/security"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/spreadsheet"
	httpecho "github.com/mohammadpnp/candidate-onboarding/internal/interfaces/http/echo"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds the use cases shared by the HTTP server and the CLI.
type Services struct {
	SubmitBatchJob           app.SubmitBatchJob
	GetBatchJob              app.GetBatchJob
	ListBatchJobs            app.ListBatchJobs
	UpdateBatchJobStatus     app.UpdateBatchJobStatus
	AssignBatchJobCredits    app.AssignBatchJobCredits
	GetBatchJobRows          app.GetBatchJobRows
	ListBatchJobAccounts     app.ListBatchJobAccounts
	DownloadBatchJobFile     app.DownloadBatchJobFile
	ProcessBatchJob          app.ProcessBatchJob
	ListNotifications        app.ListNotifications
	MarkNotificationRead     app.MarkNotificationRead
	MarkAllNotificationsRead app.MarkAllNotificationsRead
}

func NewServices(db *gorm.DB, pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) Services {
	batchJobRepo := repository.NewBatchJobRepository(db)
	accountRepo := repository.NewAccountRepository(pool)
	accountQueryRepo := repository.NewAccountQueryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	codec := spreadsheet.NewCodec()

	processBatchJob := app.NewProcessBatchJob(app.ProcessBatchJobDeps{
		Jobs:     batchJobRepo,
		Claims:   batchJobRepo,
		Codec:    codec,
		Accounts: accountRepo,
		Hasher:   security.NewBcryptHasher(cfg.Onboarding.BcryptCost),
		Notifier: app.NewCompletionNotifier(notificationRepo),
		Logger:   logger.Sugar().Named("onboarding"),
	}, app.ProcessBatchJobConfig{
		MaxRows: cfg.Onboarding.MaxRows,
		Timeout: cfg.Onboarding.ProcessTimeout,
		Lease:   cfg.Onboarding.Lease,
	})

	return Services{
		SubmitBatchJob:           app.NewSubmitBatchJob(batchJobRepo, codec),
		GetBatchJob:              app.NewGetBatchJob(batchJobRepo),
		ListBatchJobs:            app.NewListBatchJobs(batchJobRepo),
		UpdateBatchJobStatus:     app.NewUpdateBatchJobStatus(batchJobRepo),
		AssignBatchJobCredits:    app.NewAssignBatchJobCredits(batchJobRepo),
		GetBatchJobRows:          app.NewGetBatchJobRows(batchJobRepo, accountQueryRepo, codec),
		ListBatchJobAccounts:     app.NewListBatchJobAccounts(batchJobRepo, accountQueryRepo),
		DownloadBatchJobFile:     app.NewDownloadBatchJobFile(batchJobRepo, codec),
		ProcessBatchJob:          processBatchJob,
		ListNotifications:        app.NewListNotifications(notificationRepo),
		MarkNotificationRead:     app.NewMarkNotificationRead(notificationRepo),
		MarkAllNotificationsRead: app.NewMarkAllNotificationsRead(notificationRepo),
	}
}

func NewHTTPServer(services Services, cfg *config.Config, logger *zap.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	server.Use(middleware.BodyLimit(cfg.BodyLimit))
	server.Use(requestLogger(logger))

	batchJobHandler := httpecho.NewBatchJobHandler(httpecho.BatchJobUseCases{
		Submit:        services.SubmitBatchJob,
		Get:           services.GetBatchJob,
		List:          services.ListBatchJobs,
		UpdateStatus:  services.UpdateBatchJobStatus,
		AssignCredits: services.AssignBatchJobCredits,
		Rows:          services.GetBatchJobRows,
		Accounts:      services.ListBatchJobAccounts,
		Download:      services.DownloadBatchJobFile,
		Process:       services.ProcessBatchJob,
	})
	notificationHandler := httpecho.NewNotificationHandler(
		services.ListNotifications,
		services.MarkNotificationRead,
		services.MarkAllNotificationsRead,
	)

	httpecho.RegisterRoutes(server, batchJobHandler, notificationHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Error("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
