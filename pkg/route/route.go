package route

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"gitlab.com/goxp/cloud0/logger"
	"gitlab.com/goxp/cloud0/service"
	"gorm.io/gorm"

	"logiroute/ms-delivery/conf"
	"logiroute/ms-delivery/pkg/handlers"
	"logiroute/ms-delivery/pkg/metrics"
	"logiroute/ms-delivery/pkg/middleware"
	"logiroute/ms-delivery/pkg/repo"
)

type Service struct {
	*service.BaseApp
	name     string
	cfg      conf.AppConfig
	reporter middleware.Reporter
	closers  []func()
}

// newService sets up what every process shares: error reporting, metrics,
// CORS, /health and /metrics.
// Initialize runs first: it adds cloud0's middlewares and NoRoute handler, and
// gin only applies middlewares to routes registered after them.
func newService(name, version string) *Service {
	cfg := conf.LoadEnv()
	s := &Service{
		BaseApp: service.NewApp(name, version),
		name:    name,
		cfg:     cfg,
	}
	if err := s.Initialize(); err != nil {
		logger.Tag("route.newService").WithError(err).Fatal("initialize app")
	}

	reporter, err := middleware.NewReporter(cfg.SentryDSN, cfg.Environment, name)
	if err != nil {
		logger.Tag("route.newService").WithError(err).Error("sentry init failed, falling back to log reporting")
	}
	s.reporter = reporter

	s.Router.Use(middleware.ErrorReporter(s.reporter))
	s.Router.Use(metrics.Middleware(name))
	s.Router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"PUT", "PATCH", "GET", "DELETE", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	health := handlers.NewHealthHandler(name, cfg.Environment)
	s.Router.GET("/health", health.Health)
	s.Router.GET("/metrics", metrics.Handler())

	return s
}

// database returns the app DB and registers the migrate endpoint.
func (s *Service) database() *gorm.DB {
	db := s.GetDB()
	if s.cfg.DbDebugEnable {
		db = db.Debug()
	}

	migrateHandler := handlers.NewMigrationHandler(db)
	s.Router.POST("/internal/migrate", migrateHandler.Migrate)
	return db
}

func (s *Service) onClose(f func()) {
	s.closers = append(s.closers, f)
}

// Start runs the http server and releases background resources when it returns.
func (s *Service) Start(ctx context.Context) error {
	defer s.Close()
	return s.BaseApp.Start(ctx)
}

func (s *Service) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
	s.reporter.Flush(2 * time.Second)
}

func newRepo(db *gorm.DB) repo.PGInterface {
	return repo.NewPGRepo(db)
}
