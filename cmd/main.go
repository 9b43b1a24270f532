// jobmate-jobs-service
//
// Job listings store backed by PostgreSQL.
// Exposes a REST API and the jobs.v1.JobService gRPC API used by the Gateway:
//   - create(job): insert a listing for an existing company
//   - findAll(title, minSalary, hasEquity): filtered listing
//   - get(id) / update(id, data) / remove(id)
//
// Publishes EVENT_JOB_* to Redis after every write and a periodic
// EVENT_JOBS_DIGEST.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"jobmate/jobs-service/internal/config"
	"jobmate/jobs-service/internal/db"
	"jobmate/jobs-service/internal/grpcserver"
	"jobmate/jobs-service/internal/jobs"
	"jobmate/jobs-service/internal/logger"
	"jobmate/jobs-service/internal/middleware"
	"jobmate/jobs-service/internal/scheduler"
	"jobmate/jobs-service/internal/tracing"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[jobs-service] Config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[jobs-service] Logger error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := serve(ctx, cfg, log)
	stop()
	_ = log.Sync()
	os.Exit(code)
}

// serve runs the service until ctx is cancelled and returns the exit code.
func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) int {
	if err := run(ctx, cfg, log); err != nil {
		log.Error("jobs-service stopped with error", zap.Error(err))
		return 1
	}
	log.Info("jobs-service stopped")
	return 0
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// ── Tracing (optional) ──────────────────────────────────────────────────
	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint, "jobs-service", version)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Info("connecting to PostgreSQL")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Info("connecting to Redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	repo := jobs.NewRepository(pool)
	pub := jobs.NewRedisPublisher(rdb)
	svc := jobs.NewService(repo, pub, log)

	// ── Digest cron ──────────────────────────────────────────────────────────
	sched := scheduler.New(repo, pub, log, cfg.DigestIntervalHours)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	jobs.NewHandler(svc, log).RegisterRoutes(mux)

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.AccessLog(log),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// ── gRPC server ──────────────────────────────────────────────────────────
	grpcSrv := grpc.NewServer()
	grpcserver.RegisterJobServiceServer(grpcSrv, grpcserver.NewServer(svc))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP listening", zap.String("version", version), zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		log.Info("gRPC listening", zap.String("port", cfg.GRPCPort))
		return grpcSrv.Serve(lis)
	})

	// ── Graceful shutdown ────────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "jobs-service",
		"version": version,
	})
}
