package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/danielumeh/bookstack/migrations"
	_ "github.com/lib/pq"
)

type server struct {
	router    chi.Router
	validator *validator.Validate
	logger    *slog.Logger
	config    *config
	books     bookStore
	covers    objectStore
}

func newServer(logger *slog.Logger, cfg *config, books bookStore, covers objectStore) *server {
	s := &server{
		router:    chi.NewRouter(),
		validator: newValidator(),
		logger:    logger,
		config:    cfg,
		books:     books,
		covers:    covers,
	}
	s.routes()
	return s
}

// @title		Bookstack
// @version	1.0
// @host		localhost:3000
// @BasePath	/api
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	logger.Info("connecting to db...")
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error(fmt.Sprintf("error connecting db, %v", err))
		os.Exit(1)
	}

	if err := db.Ping(); err != nil {
		logger.Error(fmt.Sprintf("error pinging db, %v", err))
		os.Exit(1)
	}
	logger.Info("db connected")

	if err := migrations.Migrate(db); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error(fmt.Sprintf("unable to load SDK config, %v", err))
		os.Exit(1)
	}
	s3client := s3.NewFromConfig(awsCfg)

	svr := newServer(logger, cfg, newPostgresBookStore(db), news3Object(s3client, cfg.S3Bucket))
	httpSvr := &http.Server{
		Addr:    cfg.Addr,
		Handler: svr.router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info(fmt.Sprintf("server starting on port %v...", strings.Trim(cfg.Addr, ":")))
	go func() {
		if err := httpSvr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(fmt.Sprintf("server error, %v", err))
			os.Exit(1)
		}
	}()
	logger.Info("server up and running")

	<-ctx.Done()
	logger.Info("kill signal recieved...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSvr.Shutdown(shutdownCtx); err != nil {
		logger.Error(fmt.Sprintf("error shutting down server, %v", err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
