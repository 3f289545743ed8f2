package main

import (
	"context"
	"log"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/josephcavalcante/projeto-todolist/api/handler"
	"github.com/josephcavalcante/projeto-todolist/internal/config"
	"github.com/josephcavalcante/projeto-todolist/internal/infrastructure/monitor"
	pgInfra "github.com/josephcavalcante/projeto-todolist/internal/infrastructure/postgres"
	redisInfra "github.com/josephcavalcante/projeto-todolist/internal/infrastructure/redis"
	"github.com/josephcavalcante/projeto-todolist/internal/middleware"
	"github.com/josephcavalcante/projeto-todolist/internal/notify"
	"github.com/josephcavalcante/projeto-todolist/internal/router"
	"github.com/josephcavalcante/projeto-todolist/internal/services"
	"github.com/josephcavalcante/projeto-todolist/internal/services/lifecycle"
	"github.com/josephcavalcante/projeto-todolist/pkg/credentials"
	"github.com/josephcavalcante/projeto-todolist/pkg/httpcontext"
	"github.com/josephcavalcante/projeto-todolist/pkg/logger"
	boltRepo "github.com/josephcavalcante/projeto-todolist/repository/bolt"
	"github.com/josephcavalcante/projeto-todolist/repository/cached"
	"github.com/josephcavalcante/projeto-todolist/repository/postgres"
	redisRepo "github.com/josephcavalcante/projeto-todolist/repository/redis"
	authUC "github.com/josephcavalcante/projeto-todolist/usecase/auth"
	eventUC "github.com/josephcavalcante/projeto-todolist/usecase/event"
	profileUC "github.com/josephcavalcante/projeto-todolist/usecase/profile"
	subtaskUC "github.com/josephcavalcante/projeto-todolist/usecase/subtask"
	taskUC "github.com/josephcavalcante/projeto-todolist/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	subtaskRepo, err := boltRepo.Open(cfg.Bolt.Path)
	if err != nil {
		zapLogger.Fatal("failed to open subtask store", zap.Error(err))
	}
	manager.Register("subtask_store", func(ctx context.Context) error {
		return subtaskRepo.Close()
	})

	mon := monitor.New(pool, redisClient, subtaskRepo, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	taskCache := redisRepo.NewTaskCache(redisClient)
	taskRepo := cached.NewTaskRepository(
		postgres.NewTaskRepository(pool),
		taskCache,
		cfg.Redis.CacheTTL,
		zapLogger,
	)

	hub := notify.NewHub(zapLogger)
	if cfg.Kafka.Enabled() {
		kafkaClient, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.Brokers...),
			kgo.DefaultProduceTopic(cfg.Kafka.Topic),
		)
		if err != nil {
			zapLogger.Fatal("kafka connection failed", zap.Error(err))
		}
		manager.Register("kafka", func(ctx context.Context) error {
			kafkaClient.Close()
			return nil
		})
		hub.Subscribe(notify.NewKafkaForwarder(kafkaClient, cfg.Kafka.Topic, zapLogger))
	}

	authUseCase := authUC.New(userRepo, sessionRepo, credentials.NewBcryptHasher(0), authUC.Config{
		JWTSecret:  cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, subtaskRepo, taskUC.TitleValidator{}, hub, zapLogger)
	subtaskUseCase := subtaskUC.New(subtaskRepo, taskUseCase, hub, zapLogger)
	eventUseCase := eventUC.New(eventRepo, hub, zapLogger)

	if cfg.Reminder.Enabled {
		reminder := services.NewReminder(eventRepo, hub, zapLogger, services.ReminderConfig{
			Interval: cfg.Reminder.Interval,
		})
		reminder.Start()
		manager.Register("reminder", func(ctx context.Context) error {
			reminder.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Subtask: apiHandler.NewSubtaskHandler(subtaskUseCase, ctxAdapter, zapLogger),
		Event:   apiHandler.NewEventHandler(eventUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
