package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"account-analyze-go/config"
	"account-analyze-go/internal/fetcher"
	"account-analyze-go/internal/handler"
	"account-analyze-go/internal/logger"
	"account-analyze-go/internal/service"
	"account-analyze-go/internal/sink"
)

// App 应用上下文，启动时构建并注入到handler
type App struct {
	cfg     *config.Config
	server  *http.Server
	closers []func() error
}

func main() {
	// 加载 .env 文件（如果存在）
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.Env); err != nil {
		logger.Fatal("Failed to init logger", zap.Error(err))
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	app, err := NewApp(cfg)
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}

	if err := app.Run(); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

// NewApp 构建全部依赖
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	if cfg.InstagramSessionID == "" {
		logger.Warn("INSTAGRAM_SESSION_ID not configured, anonymous requests are rate limited by Instagram")
	}
	instagram := fetcher.NewInstagramClient(
		cfg.InstagramAppID,
		cfg.FetchTimeout(),
		fetcher.WithBaseURL(cfg.InstagramBaseURL),
		fetcher.WithSessionID(cfg.InstagramSessionID),
	)

	// 落盘目标：CSV + SQLite，配置了DATABASE_URL时额外写PostgreSQL
	targets := []sink.Target{sink.NewCSVFile(cfg.ResultsCSVPath)}

	sqliteTable, err := sink.NewSQLiteTable(cfg.SQLitePath, cfg.ResultsTable)
	if err != nil {
		return nil, err
	}
	targets = append(targets, sqliteTable)
	app.closers = append(app.closers, sqliteTable.Close)

	if cfg.DatabaseURL != "" {
		pgTable, err := sink.NewPostgresTable(cfg.DatabaseURL, cfg.ResultsTable)
		if err != nil {
			logger.Warn("Failed to connect to PostgreSQL, results will only be stored locally", zap.Error(err))
		} else {
			logger.Info("Mirroring results to PostgreSQL", zap.String("table", cfg.ResultsTable))
			targets = append(targets, pgTable)
			app.closers = append(app.closers, pgTable.Close)
		}
	}

	accountService := service.NewAccountService(instagram, sink.NewResultSink(targets...))

	accountHandler, err := handler.NewAccountHandler(accountService)
	if err != nil {
		return nil, err
	}

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("/", accountHandler.Index)
	mux.HandleFunc("/health", accountHandler.Health)
	mux.HandleFunc("/api/analyze", accountHandler.AnalyzeJSON)
	mux.Handle("/metrics", promhttp.Handler())

	app.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

// Run 启动HTTP服务，收到SIGINT/SIGTERM后优雅退出
func (a *App) Run() error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-signalCh:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
