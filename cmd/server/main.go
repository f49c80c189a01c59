package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jobhub/assessment/internal/api"
	"github.com/jobhub/assessment/internal/assessment"
	"github.com/jobhub/assessment/internal/events"
	"github.com/jobhub/assessment/internal/grader"
	"github.com/jobhub/assessment/internal/infrastructure/config"
	"github.com/jobhub/assessment/internal/service"
	"github.com/jobhub/assessment/internal/store"

	_ "github.com/jobhub/assessment/docs" // generated swagger docs
)

// @title           Job Hub Assessment API
// @version         1.0
// @description     Skill assessments: multiple choice and short answer questions, evaluated on submit.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pub, err := openEvents(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open event publisher", "error", err)
		os.Exit(1)
	}
	defer pub.Close()

	fetcher := assessment.NewHTTPFetcher(cfg.AssessmentAPIURL, cfg.HTTPTimeout)
	evaluator := newEvaluator(cfg)

	exams := service.NewExamService(fetcher, evaluator, db, pub, logger, service.Config{
		RedirectDelay: cfg.RedirectDelay,
		RedirectTo:    cfg.RedirectTo,
	})
	defer exams.Close()

	handler := api.NewHandler(exams, assessment.DefaultSkills, logger)

	// ── Routes ──────────────────────────────────────────────────────
	router := api.NewRouter(handler, logger, cfg.CORSOrigins)

	// Swagger UI served at /swagger/
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// submit waits for every short-answer evaluation
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"store", cfg.StoreDriver,
		"evaluator", cfg.Evaluator,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == "redis" {
		return store.NewRedis(ctx, cfg.RedisURL, "assessment:")
	}
	return store.NewSQLite(cfg.SQLitePath)
}

func newEvaluator(cfg *config.Config) grader.Evaluator {
	if cfg.Evaluator == "llm" {
		return grader.NewLLMEvaluator(cfg.LLMURL, cfg.LLMModel, cfg.HTTPTimeout)
	}
	return grader.NewRemoteEvaluator(cfg.EvaluatorAPIURL, cfg.HTTPTimeout)
}

// openEvents publishes to kafka when brokers are configured. Otherwise events
// stay in process and feed the review log.
func openEvents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*events.Publisher, error) {
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(kp), nil
	}

	ch := events.NewGoChannel(logger)
	if err := events.RunReviewLog(ctx, ch, logger); err != nil {
		ch.Close()
		return nil, err
	}
	return events.NewPublisher(ch), nil
}
