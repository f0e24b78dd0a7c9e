package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinetrack/api"
	"github.com/metinatakli/cinetrack/internal/catalog"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/metinatakli/cinetrack/internal/events"
	"github.com/metinatakli/cinetrack/internal/mailer"
	"github.com/metinatakli/cinetrack/internal/repository"
	"github.com/metinatakli/cinetrack/internal/reservation"
	appvalidator "github.com/metinatakli/cinetrack/internal/validator"
	"github.com/metinatakli/cinetrack/internal/vcs"
	"github.com/metinatakli/cinetrack/migrations"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "cinetrack-api"

var (
	version = vcs.Version()
)

var _ api.ServerInterface = (*Application)(nil)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	userRepo     domain.UserRepository
	movieRepo    domain.MovieRepository
	showingRepo  domain.ShowingRepository
	catalog      domain.MovieCatalog
	reservations domain.ReservationService
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	showingRepo domain.ShowingRepository,
	catalog domain.MovieCatalog,
	reservations domain.ReservationService) *Application {

	if cfg.Layout == (domain.Layout{}) {
		cfg.Layout = domain.DefaultLayout()
	}

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		userRepo:       userRepo,
		movieRepo:      movieRepo,
		showingRepo:    showingRepo,
		catalog:        catalog,
		reservations:   reservations,
	}
}

func Run() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, displayVersion, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(logger.Handler(), otelslog.NewHandler(serviceName)))
	}

	var (
		db          *pgxpool.Pool
		redisClient *redis.Client
		cache       redis.UniversalClient
		userRepo    domain.UserRepository
		movieRepo   domain.MovieRepository
		showingRepo domain.ShowingRepository
		seatRepo    domain.SeatRepository
		bookingRepo domain.BookingRepository
	)

	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		cache = redisClient
	}

	switch cfg.Store {
	case StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")

		store := repository.NewMemoryStore()
		userRepo = store.Users()
		movieRepo = store.Movies()
		showingRepo = store.Showings()
		seatRepo = store.Seats()
		bookingRepo = store.Bookings()
	default:
		db, err = NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			err = RunMigrations(db)
			if err != nil {
				return err
			}

			logger.Info("database migrations applied")
		}

		userRepo = repository.NewPostgresUserRepository(db)
		movieRepo = repository.NewPostgresMovieRepository(db)
		showingRepo = repository.NewPostgresShowingRepository(db)
		seatRepo = repository.NewPostgresSeatRepository(db)
		bookingRepo = repository.NewPostgresBookingRepository(db)
	}

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	reservations, err := reservation.NewService(
		showingRepo,
		seatRepo,
		bookingRepo,
		reservation.WithPublisher(publisher),
		reservation.WithLogger(logger),
		reservation.WithDefaultLayout(cfg.Layout),
	)
	if err != nil {
		return err
	}

	var movieCatalog domain.MovieCatalog = catalog.NewOMDbClient(cfg.OMDb.URL, cfg.OMDb.APIKey)
	if cache != nil {
		movieCatalog = catalog.NewCachedCatalog(movieCatalog, cache, cfg.OMDb.CacheTTL, logger)
	}

	app := NewApp(
		cfg,
		logger,
		db,
		cache,
		appvalidator.NewValidator(),
		newMailer(cfg, logger),
		NewSessionManager(redisClient, cfg.SessionLifetime),
		userRepo,
		movieRepo,
		showingRepo,
		movieCatalog,
		reservations,
	)

	return app.serve()
}

func newPublisher(cfg Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQP.URL == "" {
		logger.Info("AMQP URL not set, booking events are not published")
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		logger.Error("failed to connect to rabbitmq, booking events are not published", "error", err)
		return events.NopPublisher{}
	}

	return publisher
}

func newMailer(cfg Config, logger *slog.Logger) mailer.Mailer {
	if cfg.SMTP.Host == "" {
		return mailer.LogMailer{
			Logf: func(format string, args ...any) {
				logger.Info(fmt.Sprintf(format, args...))
			},
		}
	}

	return mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
}

// NewSessionManager keeps sessions in Redis when a client is given and in
// process memory otherwise.
func NewSessionManager(client *redis.Client, idleTimeout time.Duration) *scs.SessionManager {
	sessionManager := scs.New()

	if client != nil {
		sessionManager.Store = goredisstore.New(client)
	}

	if idleTimeout > 0 {
		sessionManager.IdleTimeout = idleTimeout
	}

	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := otelpgx.RecordStats(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to record database stats: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the embedded schema migrations that are not applied yet.
func RunMigrations(db *pgxpool.Pool) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source error: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db)
	defer sqlDB.Close()

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "store", app.config.Store)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/openapi.json", app.GetOpenAPIDocument)

	api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.requireAuthentication},
		ErrorHandlerFunc: app.paramErrorResponse,
	})

	return r
}
