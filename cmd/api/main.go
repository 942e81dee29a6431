package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/pharmreg_api/internal/cache"
	"github.com/GTDGit/pharmreg_api/internal/config"
	"github.com/GTDGit/pharmreg_api/internal/database"
	"github.com/GTDGit/pharmreg_api/internal/handler"
	"github.com/GTDGit/pharmreg_api/internal/middleware"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// main is the entrypoint of the pharmaceutical registry API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting registry api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis; the API runs without the reference cache when it is unavailable
	var (
		refCache    *cache.ReferenceCache
		cachePinger handler.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, reference cache disabled")
		} else {
			defer redisClient.Close()
			refCache = cache.NewReferenceCache(redisClient, cfg.Cache.ReferenceTTL)
			cachePinger = redisClient
			log.Info().Dur("ttl", cfg.Cache.ReferenceTTL).Msg("redis connected, reference cache enabled")
		}
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	pltabRepo := repository.NewPltabRepository(db)
	drugRepo := repository.NewDrugRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	priceRepo := repository.NewPriceListRepository(db)
	atcRepo := repository.NewATCRepository(db)
	drugATCRepo := repository.NewDrugATCRepository(db)
	formRepo := repository.NewDrugFormRepository(db)
	drugCompanyRepo := repository.NewDrugCompanyRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// 5. Initialize services
	jwtManager := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := service.NewAuthService(userRepo, jwtManager, cfg.DefaultLang)
	pltabSvc := service.NewPltabService(pltabRepo, refCache, cfg.DefaultLang)
	drugSvc := service.NewDrugService(drugRepo, cfg.DefaultLang)
	companySvc := service.NewCompanyService(companyRepo, cfg.DefaultLang)
	packageSvc := service.NewPackageService(packageRepo, cfg.DefaultLang)
	priceSvc := service.NewPriceListService(priceRepo)
	catalogSvc := service.NewCatalogService(atcRepo, drugATCRepo, formRepo, drugCompanyRepo, documentRepo)

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Health: handler.NewHealthHandler(handler.PingFunc(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}), cachePinger),
		Auth:      handler.NewAuthHandler(authSvc),
		Pltab:     handler.NewPltabHandler(pltabSvc),
		Drug:      handler.NewDrugHandler(drugSvc, companySvc),
		Company:   handler.NewCompanyHandler(companySvc),
		Package:   handler.NewPackageHandler(packageSvc),
		PriceList: handler.NewPriceListHandler(priceSvc),
		Catalog:   handler.NewCatalogHandler(catalogSvc),
	}

	// 7. Setup middleware
	jwtMw := middleware.NewJWTMiddleware(jwtManager, middleware.LanguageLookup)
	loginThrottle := middleware.NewLoginThrottle(cfg.Auth.LoginRatePerMin)

	// 8. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewEngine(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure router")
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	handler.SetupRoutes(router, handlers, jwtMw, loginThrottle)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB, source string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
