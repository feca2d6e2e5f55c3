package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fixpoint-labs/repair-shop-service/internal/api/http"
	"github.com/fixpoint-labs/repair-shop-service/internal/api/http/handlers"
	"github.com/fixpoint-labs/repair-shop-service/internal/auth"
	"github.com/fixpoint-labs/repair-shop-service/internal/config"
	"github.com/fixpoint-labs/repair-shop-service/internal/events"
	"github.com/fixpoint-labs/repair-shop-service/internal/observability"
	"github.com/fixpoint-labs/repair-shop-service/internal/persistence"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	"github.com/fixpoint-labs/repair-shop-service/internal/storage"
	"github.com/fixpoint-labs/repair-shop-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	txManager := repository.NewTxManager(pool)
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	questionRepo := repository.NewTriageQuestionRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)
	changeRepo := repository.NewTicketChangeRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	uploader := storage.NewImageHostClient(30 * time.Second)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		TxManager:    txManager,
		CustomerRepo: customerRepo,
		TicketRepo:   ticketRepo,
		CategoryRepo: categoryRepo,
		QuestionRepo: questionRepo,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		PhotoRepo:  photoRepo,
		ChangeRepo: changeRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})
	photoService := service.NewPhotoService(service.PhotoDependencies{
		PhotoRepo:    photoRepo,
		TicketRepo:   ticketRepo,
		SettingsRepo: settingsRepo,
		Uploader:     uploader,
		Logger:       logger,
	})
	invoiceService := service.NewInvoiceService(ticketRepo, customerRepo, categoryRepo, settingsRepo)
	catalogService := service.NewCatalogService(brandRepo, categoryRepo, questionRepo)
	customerService := service.NewCustomerService(customerRepo, ticketRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(userRepo, tokenManager, cfg.Auth.BcryptCost)
	notificationService := service.NewNotificationService(dispatcher, logger)
	reminderService := service.NewReminderService(ticketRepo, dispatcher, metrics, logger,
		time.Duration(cfg.Reminder.StaleAfterHr)*time.Hour)

	worker.StartNotificationWorker(notificationService)
	reminderCron, err := worker.StartReminderWorker(cfg.Reminder, reminderService, logger)
	if err != nil {
		logger.Fatal("failed to schedule reminder worker", zap.Error(err))
	}

	sessionMiddleware := auth.NewSessionMiddleware(tokenManager, userRepo, cfg.Auth.SessionCookie)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 12 << 20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Intake:    handlers.NewIntakeHandler(intakeService, catalogService, settingsService),
		Tickets:   handlers.NewTicketsHandler(ticketService, photoService, invoiceService),
		Photos:    handlers.NewPhotosHandler(photoService),
		Customers: handlers.NewCustomersHandler(customerService),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Users: handlers.NewUsersHandler(authService, handlers.SessionCookieConfig{
			Name:   cfg.Auth.SessionCookie,
			Secure: cfg.Auth.SecureCookie,
		}),
		Settings: handlers.NewSettingsHandler(settingsService),

		Session: sessionMiddleware,
		RateLimiter: httptransport.IntakeRateLimiter(redis.Client,
			cfg.Intake.RateLimitPerMinute, cfg.Intake.RateLimitBurst, logger),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if reminderCron != nil {
		reminderCron.Stop()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
