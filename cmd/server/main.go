package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"buybox/internal/advisor"
	"buybox/internal/client/openrouter"
	"buybox/internal/client/rainforest"
	"buybox/internal/client/serpwow"
	"buybox/internal/config"
	cronrunner "buybox/internal/cron"
	"buybox/internal/db"
	"buybox/internal/handler"
	"buybox/internal/logger"
	gormrepository "buybox/internal/repository/gorm"
	"buybox/internal/service"

	_ "buybox/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("BB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	rainforestHTTP := &http.Client{Timeout: cfg.Rainforest.Timeout}
	rainforestClient := rainforest.NewClient(rainforestHTTP, cfg.Rainforest.BaseURL, cfg.Rainforest.APIKey)
	serpwowHTTP := &http.Client{Timeout: cfg.SerpWow.Timeout}
	serpwowClient := serpwow.NewClient(serpwowHTTP, cfg.SerpWow.BaseURL, cfg.SerpWow.APIKey)
	openrouterHTTP := &http.Client{Timeout: cfg.OpenRouter.Timeout}
	openrouterClient := openrouter.NewClient(openrouterHTTP, cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey)

	store := gormrepository.New(dbConn.Gorm)

	strategyAdvisor := advisor.New(cfg.Advisor, nil, logger)

	trackerService := &service.TrackerService{
		Repo:       store,
		Rainforest: rainforestClient,
		Advisor:    strategyAdvisor,
		Logger:     logger,
		Config:     cfg.Tracker,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	statusHandler := &handler.StatusHandler{
		Rainforest: rainforestClient,
		SerpWow:    serpwowClient,
		OpenRouter: openrouterClient,
	}
	statusHandler.Register(engine)
	advisorHandler := &handler.AdvisorHandler{
		Advisor: strategyAdvisor,
		Repo:    store,
		Logger:  logger,
	}
	advisorHandler.Register(engine)
	amazonHandler := &handler.AmazonHandler{
		Client:        rainforestClient,
		Advisor:       strategyAdvisor,
		Repo:          store,
		Logger:        logger,
		DefaultDomain: cfg.Rainforest.AmazonDomain,
	}
	amazonHandler.Register(engine)
	serpHandler := &handler.SerpHandler{
		Client: serpwowClient,
		Repo:   store,
		Logger: logger,
	}
	serpHandler.Register(engine)
	trackedHandler := &handler.TrackedHandler{
		Repo:               store,
		DefaultMarketplace: cfg.Tracker.Marketplace,
	}
	trackedHandler.Register(engine)
	trackerHandler := &handler.TrackerHandler{Service: trackerService}
	trackerHandler.Register(engine)
	chatHandler := &handler.ChatHandler{
		Client: openrouterClient,
		Repo:   store,
		Logger: logger,
		Model:  cfg.OpenRouter.Model,
	}
	chatHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && cfg.Tracker.Enabled {
		_, err := cronRunner.Add(cfg.Cron.TrackerSweep, func(ctx context.Context) {
			result, err := trackerService.Sweep(ctx)
			if err != nil {
				logger.Warn("cron tracker sweep failed", zap.Error(err))
				return
			}
			logger.Info("cron tracker sweep ok",
				zap.Int("products", result.Products),
				zap.Int("price_points", result.PricePoints),
				zap.Int("decisions", result.Decisions),
				zap.Int("errors", result.Errors),
			)
		})
		if err != nil {
			logger.Warn("cron register tracker sweep failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
