package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"forestguard/internal/auth"
	"forestguard/internal/config"
	"forestguard/internal/events"
	apphttp "forestguard/internal/http"
	"forestguard/internal/model"
	"forestguard/internal/news"
	"forestguard/internal/observability"
	"forestguard/internal/repository"
	"forestguard/internal/repository/jsonfile"
	"forestguard/internal/repository/sqlite"
	"forestguard/internal/service"
	"forestguard/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}
	if strings.TrimSpace(cfg.News.APIKey) == "" {
		logger.Warn("news api key is not set, the news feed will be empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, db, err := buildUserRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("setup user store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user store: %v", err)
	}

	models, err := loadModels(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("load models: %v", err)
	}
	logger.Infof("model artifacts loaded from %s", cfg.Models.Dir)

	metrics := observability.NewMetrics()

	publisher := buildPublisher(cfg, logger)
	defer publisher.Close()

	userService := service.NewUserService(userRepo)
	predictionService := service.NewPredictionService(models, publisher, metrics, logger)

	newsClient := news.NewClient(cfg.News.APIKey, cfg.News.Timeout, logger)
	feed := news.NewCachedSource(newsClient, cfg.News.CacheTTL, nil, metrics)

	var refresher *news.Refresher
	if cfg.News.RefreshEnabled && cfg.News.APIKey != "" {
		refresher = news.NewRefresher(feed, cfg.News.RefreshInterval, logger)
		refresher.Start(ctx)
	}

	sessions := auth.NewSessions(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")

	handler := apphttp.NewHandler(userService, predictionService, feed, sessions, metrics, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if refresher != nil {
		refresher.Shutdown()
	}

	logger.Info("bye")
}

func buildUserRepository(cfg config.Config, logger *logrus.Logger) (repository.UserRepository, *sql.DB, error) {
	switch cfg.Users.Backend {
	case "sqlite":
		db, err := sqlite.Open(cfg.Users.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		logger.Infof("using sqlite user store at %s", cfg.Users.DBPath)
		return sqlite.NewUserRepository(db), db, nil
	default:
		logger.Infof("using json user store at %s", cfg.Users.Path)
		return jsonfile.NewUserRepository(cfg.Users.Path, logger), nil, nil
	}
}

// loadModels reads the scaler/classifier/regressor bundle, fetching the
// artifact files from S3 first when a bucket is configured.
func loadModels(ctx context.Context, cfg config.Config, logger *logrus.Logger) (model.Bundle, error) {
	if cfg.Models.Bucket != "" {
		store, err := buildArtifactStore(ctx, cfg, logger)
		if err != nil {
			return model.Bundle{}, err
		}
		fetchCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		paths, err := store.FetchArtifacts(fetchCtx, cfg.Models.Bucket, cfg.Models.KeyPrefix, cfg.Models.Dir)
		if err != nil {
			return model.Bundle{}, fmt.Errorf("fetch artifacts: %w", err)
		}
		logger.Infof("fetched %d model artifacts from s3://%s/%s", len(paths), cfg.Models.Bucket, cfg.Models.KeyPrefix)
	}
	return model.Load(cfg.Models.Dir)
}

func buildArtifactStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Store, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Models.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Models.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Models.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 artifact bucket %s (region %s)", cfg.Models.Bucket, cfg.Models.Region)
	return storage.NewS3Store(client), nil
}

func buildPublisher(cfg config.Config, logger *logrus.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 || (len(cfg.Kafka.Brokers) == 1 && cfg.Kafka.Brokers[0] == "") {
		return events.NoopPublisher{}
	}
	logger.Infof("publishing prediction events to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}
