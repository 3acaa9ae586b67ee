// Package bootstrap builds the object graph shared by the API server and the
// one-shot sweep command.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sakibmtatva/online-job-portal-be/config"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	mongorepo "github.com/sakibmtatva/online-job-portal-be/internal/repository/mongo"
	"github.com/sakibmtatva/online-job-portal-be/internal/repository/postgres"
	"github.com/sakibmtatva/online-job-portal-be/internal/scheduler"
	"github.com/sakibmtatva/online-job-portal-be/internal/usecase"
	"github.com/sakibmtatva/online-job-portal-be/pkg/database"
	"github.com/sakibmtatva/online-job-portal-be/pkg/email"
	"github.com/sakibmtatva/online-job-portal-be/pkg/fcm"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
	Mongo  *mongo.Client
	Redis  *goredis.Client

	AuthUC         domain.AuthUsecase
	JobUC          domain.JobUsecase
	ColumnUC       domain.ColumnUsecase
	ApplicationUC  domain.ApplicationUsecase
	MeetingUC      domain.MeetingUsecase
	NotificationUC domain.NotificationUsecase
	BookmarkUC     domain.BookmarkUsecase
	HealthUC       usecase.HealthUsecase
}

// New connects to Postgres and every optional backend that is configured.
// Optional backends that fail to connect are logged and left out.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	app := &App{Config: cfg, DB: db}
	probes := map[string]usecase.HealthProbe{"postgres": db.Ping}

	tx := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	columnRepo := postgres.NewColumnRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	meetingRepo := postgres.NewMeetingRepository(db)
	bookmarkRepo := postgres.NewBookmarkRepository(db)
	pushTokenRepo := postgres.NewPushTokenRepository(db)

	notificationRepo := postgres.NewNotificationRepository(db)
	if cfg.NotificationStore == config.NotificationStoreMongo {
		client, mdb, err := database.NewMongoConnection(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		app.Mongo = client
		notificationRepo = mongorepo.NewNotificationRepository(mdb)
		probes["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	}

	rdb, err := redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting stays in memory", "error", err)
	default:
		app.Redis = rdb
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var pusher domain.PushSender
	if cfg.FirebaseCredentialsFile != "" {
		client, err := fcm.NewClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Log.Warn("Push delivery disabled", "error", err)
		} else {
			pusher = client
		}
	}

	mailer := email.NewEmailService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email provider not configured, workflow emails will be skipped", "provider", cfg.EmailProvider)
	}

	clock := usecase.SystemClock(cfg.Location)

	app.NotificationUC = usecase.NewNotificationUsecase(notificationRepo, pushTokenRepo, pusher, clock)
	app.AuthUC = usecase.NewAuthUsecase(userRepo)
	app.JobUC = usecase.NewJobUsecase(jobRepo, app.NotificationUC, clock)
	app.ColumnUC = usecase.NewColumnUsecase(tx, columnRepo, applicationRepo, jobRepo)
	app.ApplicationUC = usecase.NewApplicationUsecase(usecase.ApplicationDeps{
		Tx:              tx,
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		ColumnRepo:      columnRepo,
		UserRepo:        userRepo,
		Notifier:        app.NotificationUC,
		Mailer:          mailer,
		Clock:           clock,
		AppURL:          cfg.AppURL,
	})
	app.MeetingUC = usecase.NewMeetingUsecase(usecase.MeetingDeps{
		Tx:          tx,
		MeetingRepo: meetingRepo,
		JobRepo:     jobRepo,
		UserRepo:    userRepo,
		Notifier:    app.NotificationUC,
		Mailer:      mailer,
		Clock:       clock,
		AppURL:      cfg.AppURL,
		Strict:      cfg.StrictMeetings(),
	})
	app.BookmarkUC = usecase.NewBookmarkUsecase(bookmarkRepo, jobRepo, userRepo, app.NotificationUC)
	app.HealthUC = usecase.NewHealthUsecase(probes)

	return app, nil
}

// Sweepers returns the periodic lifecycle jobs: meeting expiry and job expiry.
func (a *App) Sweepers() scheduler.Group {
	return scheduler.Group{
		scheduler.NewSweeper("meeting-expiry", a.Config.MeetingSweepInterval, a.MeetingUC.ExpireElapsed),
		scheduler.NewSweeper("job-expiry", a.Config.JobSweepInterval, a.JobUC.ExpireElapsedJobs),
	}
}

func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Redis close failed", "error", err)
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			logger.Log.Warn("MongoDB disconnect failed", "error", err)
		}
	}
	a.DB.Close()
}
