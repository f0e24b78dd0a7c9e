package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/app"
	"github.com/metinatakli/cinetrack/internal/catalog"
	"github.com/metinatakli/cinetrack/internal/mailer"
	"github.com/metinatakli/cinetrack/internal/mocks"
	"github.com/metinatakli/cinetrack/internal/repository"
	"github.com/metinatakli/cinetrack/internal/reservation"
	appvalidator "github.com/metinatakli/cinetrack/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	RedisClient    *redis.Client
	Mailer         *mailer.MockMailer
	Publisher      *mocks.MockPublisher
	SessionManager *scs.SessionManager
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	err = app.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient, cfg.SessionLifetime)

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	showingRepo := repository.NewPostgresShowingRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	reservations, err := reservation.NewService(showingRepo, seatRepo, bookingRepo,
		reservation.WithPublisher(publisher),
		reservation.WithLogger(logger),
		reservation.WithDefaultLayout(cfg.Layout),
	)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	movieCatalog := catalog.NewCachedCatalog(
		catalog.NewOMDbClient(cfg.OMDb.URL, cfg.OMDb.APIKey),
		redisClient,
		cfg.OMDb.CacheTTL,
		logger,
	)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mailer,
		sessionManager,
		userRepo,
		movieRepo,
		showingRepo,
		movieCatalog,
		reservations,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		RedisClient:    redisClient,
		Mailer:         mailer,
		Publisher:      publisher,
		SessionManager: sessionManager,
	}, nil
}
