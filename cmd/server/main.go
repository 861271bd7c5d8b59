package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/jminango20/data-docs-api/api/handler"
	"github.com/jminango20/data-docs-api/internal/config"
	cassandraInfra "github.com/jminango20/data-docs-api/internal/infrastructure/cassandra"
	"github.com/jminango20/data-docs-api/internal/infrastructure/monitor"
	"github.com/jminango20/data-docs-api/internal/middleware"
	"github.com/jminango20/data-docs-api/internal/router"
	"github.com/jminango20/data-docs-api/internal/services/lifecycle"
	"github.com/jminango20/data-docs-api/pkg/httpcontext"
	"github.com/jminango20/data-docs-api/pkg/logger"
	"github.com/jminango20/data-docs-api/repository/cassandra"
	documentUC "github.com/jminango20/data-docs-api/usecase/document"
	searchUC "github.com/jminango20/data-docs-api/usecase/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		AppName:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	session, err := cassandraInfra.NewSession(appCtx, cfg.Cassandra, cassandraInfra.ConnectOptions{
		MaxAttempts: cfg.Cassandra.ConnectAttempts,
		Delay:       cfg.Cassandra.ConnectDelay,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("cassandra connection failed", zap.Error(err))
	}
	manager.Register("cassandra", func(ctx context.Context) error {
		session.Close()
		return nil
	})

	mon := monitor.New(session, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	docRepo := cassandra.NewDocumentRepository(session, zapLogger)

	documentUseCase := documentUC.New(docRepo, zapLogger)
	searchUseCase := searchUC.New(docRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Document: apiHandler.NewDocumentHandler(documentUseCase, ctxAdapter, zapLogger),
		Search:   apiHandler.NewSearchHandler(searchUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	var opts router.Options
	if cfg.HTTP.EnableMetrics {
		opts.Middleware = middleware.HTTPMetrics()
		opts.Metrics = middleware.MetricsHandler()
	}
	r := router.New(handlers, opts)

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
