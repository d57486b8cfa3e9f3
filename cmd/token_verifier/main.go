package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"token_verifier/internal/analyzer"
	"token_verifier/internal/cache"
	"token_verifier/internal/client"
	"token_verifier/internal/config"
	"token_verifier/internal/infrastructure/chains"
	"token_verifier/internal/infrastructure/restapi"
	applogger "token_verifier/internal/pkg/logger"
	"token_verifier/internal/pkg/utils"
	"token_verifier/internal/scoring"
	"token_verifier/internal/service"
	"token_verifier/internal/validator"
	"token_verifier/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	// Initialize logger (using logrus for bootstrap, zap for the services)
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync() // flushes buffer, if any

	// Bridge slog callers onto the zap core.
	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	stdLogger := slog.New(slogHandler)
	slog.SetDefault(stdLogger)

	// Load configuration
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Update log level from config
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Infof("Failed to log to file, using default stdout: %v", err)
		}
	}

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	// Initialize Prometheus metrics
	metrics.MustRegisterMetrics()

	// Chain registry with config overrides applied on top of the built-ins
	registry := chains.NewRegistry(applogger.NewSlogAdapter(), cfg.Chains, cfg.RpcClient.DefaultTimeoutMs)

	// RPC client provider
	connectionTimeout := time.Duration(cfg.RpcClient.ConnectionTimeoutMs) * time.Millisecond
	rpcCallTimeout := time.Duration(cfg.RpcClient.DefaultTimeoutMs) * time.Millisecond
	clientProvider := client.NewEVMClientProvider(connectionTimeout, rpcCallTimeout, zapLogger)

	// Block-explorer client (shared rate limit across every chain)
	explorerTimeout := time.Duration(cfg.Explorer.RequestTimeoutMillis) * time.Millisecond
	explorerClient := client.NewExplorerClient(
		explorerTimeout,
		cfg.Explorer.RateLimitPerSecond,
		cfg.Explorer.BurstLimit,
		zapLogger,
	)
	zapLogger.Info("Explorer client initialized")

	// Analysis pipeline
	ownershipAnalyzer := analyzer.NewOwnershipAnalyzer(explorerClient, zapLogger)
	holderAnalyzer := analyzer.NewHolderConcentrationAnalyzer(explorerClient, zapLogger, cfg.Explorer.TopHolderLimit)
	chainAnalyzer := service.NewChainAnalyzer(
		cfg,
		registry,
		clientProvider,
		explorerClient,
		ownershipAnalyzer,
		holderAnalyzer,
		scoring.Score,
		scoring.LevelForScore,
		zapLogger,
	)
	zapLogger.Info("Chain analyzer initialized", zap.String("classifierMode", cfg.Verification.ClassifierMode))

	// Verification cache and services
	verificationCache := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	crossChainSvc := service.NewCrossChainService(cfg, chainAnalyzer, registry, zapLogger)
	verificationSvc := service.NewVerificationService(
		cfg,
		validator.NewAddressValidator(),
		chainAnalyzer,
		crossChainSvc,
		verificationCache,
		zapLogger,
	)
	zapLogger.Info("Verification service initialized")

	// Background gas-price refresh
	gasPriceSvc := service.NewGasPriceService(cfg, registry, clientProvider, zapLogger)
	gasCtx, cancelGas := context.WithCancel(context.Background())
	defer cancelGas()
	if cfg.GasPrice.Enabled {
		go gasPriceSvc.RunRefreshLoop(gasCtx)
		zapLogger.Info("Gas price refresh loop started",
			zap.Int("intervalSec", cfg.GasPrice.RefreshIntervalSec))
	}

	// Initialize Gin router
	handler := restapi.NewVerificationHandler(verificationSvc, gasPriceSvc, registry, verificationCache)
	router := restapi.SetupRouter(handler)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	// Pprof endpoints (for debugging performance issues)
	// Make sure to protect these in a production environment
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")
	cancelGas()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
