// @title           Quotations API
// @version         1.0
// @description     Quotation builder backend: numbering, PDF generation, storage and mail.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "quotations/docs"
	"quotations/handlers"
	"quotations/models"
	"quotations/pdfgen"
	"quotations/repository"
	"quotations/services"
	"quotations/storage"
	"quotations/utils"
)

func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin",
		"X-Requested-With", "Authorization", "User-Agent", "Cache-Control",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}
	// the PDF endpoints report their outcome in headers
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
		"X-Quotation-Number", "X-PDF-URL", "X-PDF-Pages", "X-Missing-Images",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// seedAdmin creates the first admin account from ADMIN_EMAIL / ADMIN_PASSWORD when it does not exist yet.
func seedAdmin(ctx context.Context, profiles *repository.ProfileRepository, cfg utils.Config, logger *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := profiles.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	if err := profiles.Create(ctx, &models.Profile{
		FullName:     cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Active:       true,
	}); err != nil {
		return err
	}
	logger.Info("admin account created", zap.String("email", cfg.AdminEmail))
	return nil
}

func main() {
	cfg := utils.LoadConfig()

	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 0 || port > 65535 {
		logger.Fatal("invalid PORT", zap.String("port", cfg.Port))
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.InitGormDB(cfg, logger)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	store, err := storage.NewLocalStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	profiles := repository.NewProfileRepository(db)
	quotations := repository.NewQuotationRepository(db, cfg.QuotationPrefix)
	settings := repository.NewSettingsRepository(db)
	products := repository.NewProductRepository(db)
	activity := repository.NewActivityLogRepository(db)

	seedCtx, cancelSeed := utils.GetDefaultQueryContext(context.Background())
	if err := seedAdmin(seedCtx, profiles, cfg, logger); err != nil {
		logger.Error("admin seed failed", zap.Error(err))
	}
	cancelSeed()

	loader := pdfgen.NewAssetLoader(&pdfgen.SourceFetcher{
		Root:         cfg.AssetRoot,
		Timeout:      cfg.AssetTimeout,
		AllowedHosts: cfg.ImageHosts(),
	}, logger.Named("assets"))
	generator := pdfgen.NewGenerator(loader, pdfgen.Options{
		LogoRef:       cfg.LogoURL,
		Pagination:    pdfgen.ParsePagination(cfg.PDFPagination),
		QRStamp:       cfg.PDFQRStamp,
		PublicBaseURL: cfg.PublicBaseURL,
	}, logger.Named("pdf"))

	deps := services.QuotationDeps{
		Quotations: quotations,
		Settings:   settings,
		Activity:   activity,
		Store:      store,
		Generator:  generator,
		Metrics:    services.Metrics(cfg.Env),
		Log:        logger,
	}
	mailer := services.NewEmailService(services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if mailer.Configured() {
		deps.Mailer = mailer
	} else {
		logger.Warn("SMTP_HOST or SMTP_FROM not set, quotation email disabled")
	}
	quotationService := services.NewQuotationService(deps)

	expiryJob, err := services.NewExpiryJob(cfg.ExpiryCron, quotationService, logger)
	if err != nil {
		logger.Fatal("expiry job init failed", zap.Error(err))
	}
	expiryJob.Start()

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(logger), cors.New(CORSConfig(cfg.CORSOrigins)))

	handlers.RegisterRoutes(r, handlers.Deps{
		Profiles:   profiles,
		Quotations: quotations,
		Settings:   settings,
		Products:   products,
		Activity:   activity,
		Service:    quotationService,
		Store:      store,
		JWTSecret:  cfg.JWTSecret,
		Log:        logger,
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// stop scheduling first so no expiry pass starts during shutdown
	if err := expiryJob.Stop(ctx); err != nil {
		logger.Warn("expiry job shutdown", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server exited")
}
