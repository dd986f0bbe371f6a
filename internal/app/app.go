// Package app wires configuration, adapters, services and the HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"virtualconf/config"
	"virtualconf/internal/adapters/auth"
	"virtualconf/internal/adapters/calendar"
	"virtualconf/internal/adapters/cms"
	"virtualconf/internal/adapters/email"
	"virtualconf/internal/cache"
	"virtualconf/internal/catalog"
	httpdelivery "virtualconf/internal/delivery/http"
	"virtualconf/internal/delivery/http/controllers"
	"virtualconf/internal/repository/postgres"
	"virtualconf/internal/services"
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	db         *sql.DB
	catalog    *catalog.Catalog
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{cfg: cfg, log: logger}

	backend, err := app.initCache()
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	if err := app.initServices(backend); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	return app, nil
}

// initCache opens the Postgres-backed session cache when DATABASE_URL is
// set and falls back to process memory otherwise.
func (a *App) initCache() (cache.Backend, error) {
	if a.cfg.DBUrl == "" {
		a.log.Info("session cache in memory")
		return cache.NewMemory(), nil
	}

	db, err := sql.Open("postgres", a.cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	a.db = db
	a.log.Info("session cache in postgres")
	return postgres.NewCacheRepository(db), nil
}

func (a *App) initServices(backend cache.Backend) error {
	sourceZone, err := time.LoadLocation(a.cfg.SourceTimezone)
	if err != nil {
		return fmt.Errorf("source timezone: %w", err)
	}

	store := cache.New(backend, cache.WithLogger(a.log))
	client := cms.NewClient(cms.Config{
		ServerURL:   a.cfg.CMS.ServerURL,
		AppID:       a.cfg.CMS.AppID,
		MasterKey:   a.cfg.CMS.MasterKey,
		SiteID:      a.cfg.CMS.SiteID,
		ClassPrefix: a.cfg.CMS.ClassPrefix,
		SourceZone:  sourceZone,
	}, &http.Client{Timeout: a.cfg.CMS.Timeout}, a.log)
	a.catalog = catalog.New(client, a.log)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    a.cfg.Email.Provider,
		FromAddress: a.cfg.Email.FromAddress,
		FromName:    a.cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             a.cfg.Email.AWSRegion,
			AccessKeyID:        a.cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    a.cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: a.cfg.Email.InsecureSkipVerify,
		},
	}, a.log)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), a.log)

	preferences := services.NewPreferenceService(store, a.cfg.DefaultTimezone)
	registration := services.NewRegistrationService(
		client,
		client,
		auth.NewJWT(a.cfg.JWTSecret),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		store,
		emailService,
		services.RegistrationConfig{
			SessionTTL:        a.cfg.SessionTTL,
			AdminEmail:        a.cfg.AdminEmail,
			AdminPasswordHash: a.cfg.AdminPasswordHash,
		},
		a.log,
	)
	talks := services.NewTalkService(a.catalog, client, client, store, preferences, calendar.NewExporter(), a.log)

	secure := a.cfg.Environment == "production"
	reports := services.NewReportService(client, client, a.log)
	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:        controllers.NewAuthController(a.log, registration, a.cfg.SessionTTL, secure),
		Schedule:    controllers.NewScheduleController(a.log, talks),
		Preference:  controllers.NewPreferenceController(a.log, preferences),
		Leaderboard: controllers.NewLeaderboardController(a.log, services.NewLeaderboardService(client)),
		Challenge:   controllers.NewChallengeController(a.log, services.NewChallengeService(client, client, a.log)),
		Content:     controllers.NewContentController(a.log, services.NewContentService(client, a.catalog)),
		Ticket:      controllers.NewTicketController(a.log, services.NewTicketService(store), reports),
	}, httpdelivery.RouterConfig{
		Resolver:       registration,
		Logger:         a.log,
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
	})

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run serves until SIGINT or SIGTERM and then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.catalog.Start(ctx, a.cfg.CatalogRefresh); err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.InfoContext(ctx, "HTTP server starting", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}
	a.log.Info("app stopped")
	return nil
}
