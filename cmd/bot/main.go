package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"gatepass/internal/audit"
	"gatepass/internal/bot"
	"gatepass/internal/gateway/telegram"
	"gatepass/internal/greeter"
	"gatepass/internal/platform/config"
	"gatepass/internal/platform/httpserver"
	"gatepass/internal/platform/logger"
	"gatepass/internal/platform/metrics"
	platformredis "gatepass/internal/platform/redis"
	"gatepass/internal/registration/docs"
	"gatepass/internal/registration/engine"
	"gatepass/internal/registration/guard"
	"gatepass/internal/registration/store/records"
	"gatepass/internal/registration/store/session"
	httpapi "gatepass/internal/transport/http"
)

// main wires the gateway, stores, and engine, then runs the event loop and
// the ops HTTP server side by side. Business logic lives in internal.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gatepass: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New()

	creds := option.WithCredentialsFile(cfg.GoogleCredentialsFile)
	driveSvc, err := drive.NewService(ctx, creds)
	if err != nil {
		return fmt.Errorf("drive client: %w", err)
	}

	var (
		recordStore records.Store
		checks      []httpapi.HealthChecker
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open postgres pool: %w", err)
		}
		defer pool.Close()
		pg := records.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		recordStore = pg
		checks = append(checks, pgHealth{pool})
		log.Info("record store: postgres")
	} else {
		sheetsSvc, err := sheets.NewService(ctx, creds)
		if err != nil {
			return fmt.Errorf("sheets client: %w", err)
		}
		recordStore = records.NewSheets(sheetsSvc, cfg.SpreadsheetID, cfg.SheetRange)
		log.Info("record store: google sheets", "spreadsheet_id", cfg.SpreadsheetID)
	}

	var sessions session.Store = session.NewMemory()
	rdb, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedis(rdb.Client, cfg.SessionTTL)
		checks = append(checks, rdb)
		log.Info("session store: redis")
	}

	gw, err := telegram.New(cfg.TelegramToken, cfg.WebhookURL, log)
	if err != nil {
		return fmt.Errorf("telegram gateway: %w", err)
	}

	intake := docs.NewIntake(gw, docs.NewDrive(driveSvc, cfg.DriveFolderID), cfg.UploadTimeout, log)
	eng := engine.New(
		sessions,
		recordStore,
		guard.New(recordStore, log),
		intake,
		engine.WithLogger(log),
		engine.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
		engine.WithAudit(audit.NewPublisher(audit.NewMemoryStore())),
	)
	b := bot.New(gw, eng, greeter.New(), log)

	var webhook http.Handler
	if cfg.WebhookURL != "" {
		webhook = gw.WebhookHandler()
	}
	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(webhook, checks...))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})
	g.Go(func() error {
		log.Info("ops server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Info("gatepass bot started")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pgHealth adapts a pgx pool to the router's health check.
type pgHealth struct {
	pool *pgxpool.Pool
}

func (p pgHealth) Health(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
