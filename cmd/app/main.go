package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WriteMind/blog-service/internal/config"
	"github.com/WriteMind/blog-service/internal/docstore/pgxstore"
	"github.com/WriteMind/blog-service/internal/gateway"
	"github.com/WriteMind/blog-service/internal/localkv"
	"github.com/WriteMind/blog-service/internal/localkv/filekv"
	"github.com/WriteMind/blog-service/internal/localkv/rediskv"
	"github.com/WriteMind/blog-service/internal/recommend"
	"github.com/WriteMind/blog-service/internal/session"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("no .env file loaded: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	dbConfig := config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	db, err := pgxstore.DB(ctx, dbConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	if err := pgxstore.Migrate(viper.GetString("db.migrations"), dbConfig.URL()); err != nil {
		logger.Sugar().Panicf("failed to run migrations: %s", err.Error())
	}

	local, err := openLocalStore(ctx, logger)
	if err != nil {
		logger.Sugar().Panicf("failed to open local key-value store: %s", err.Error())
	}

	gw := gateway.New(logger, pgxstore.New(db), gateway.Config{})
	recs := recommend.New(logger, recommend.NewSignalStore(local))
	sess := session.New(logger, gw, recs, local)

	posts := sess.RefreshPosts(ctx)
	logger.Sugar().Infof("Loaded %d posts", len(posts))

	refreshEvery := viper.GetDuration("app.refresh_interval")
	if refreshEvery <= 0 {
		refreshEvery = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(refreshEvery)
		defer ticker.Stop()
		for range ticker.C {
			sess.RefreshPosts(ctx)
		}
	}()

	logger.Info("Session ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down")
	db.Close()
}

// openLocalStore backs the signal/draft store with Redis when an address is
// configured, otherwise with a local file.
func openLocalStore(ctx context.Context, logger *zap.Logger) (localkv.Store, error) {
	redisConfig := config.RedisConfig{
		Addr: os.Getenv("REDIS_ADDR"),
	}
	if redisConfig.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisConfig.Addr})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			return nil, err
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)
		return rediskv.New(rdb), nil
	}

	path := viper.GetString("app.local_store")
	if path == "" {
		path = "writemind.kv"
	}
	return filekv.Open(path)
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
