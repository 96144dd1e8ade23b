package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stock_ledger/api"
	"stock_ledger/internal/auth"
	"stock_ledger/internal/config"
	"stock_ledger/internal/database"
	"stock_ledger/internal/ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DatabasePath, &ledger.Product{}, &ledger.Sale{}, &auth.User{})
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}

	ledgerService := ledger.NewService(ledger.NewGormStorage(db), logger, cfg.LowStockThreshold)
	gate := auth.NewGate(auth.NewGormUserStorage(db), auth.NewPasswordHasher(cfg.BcryptCost), logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.InitRoutes(r, ledgerService, gate, logger)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Port), zap.String("database", cfg.DatabasePath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				err := server.Shutdown(ctx)
				return errors.Join(err, database.Close(db))
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
