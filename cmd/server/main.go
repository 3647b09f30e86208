package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"teller/internal/audit"
	httpapi "teller/internal/http"
	"teller/internal/ledger/handler"
	"teller/internal/ledger/metrics"
	"teller/internal/ledger/service"
	"teller/internal/ledger/store/memory"
	"teller/internal/platform/config"
	"teller/internal/platform/httpserver"
	"teller/internal/platform/logger"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	auditStore := audit.NewInMemoryStore()
	auditPublisher := audit.NewPublisher(cfg.AuditBufferSize, log)
	auditWorker := audit.NewWorker(auditStore, auditPublisher.Events())

	svc := service.New(memory.New(),
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAudit(auditPublisher),
	)

	ledgerHandler := handler.New(svc, auditStore, log)
	router := httpapi.NewRouter(ledgerHandler)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting teller", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
