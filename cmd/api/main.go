package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/phoenixpgs/guardian-api/internal/config"
	areaHandler "github.com/phoenixpgs/guardian-api/internal/handler/area"
	departmentHandler "github.com/phoenixpgs/guardian-api/internal/handler/department"
	facilityHandler "github.com/phoenixpgs/guardian-api/internal/handler/facility"
	healthHandler "github.com/phoenixpgs/guardian-api/internal/handler/health"
	interchangeHandler "github.com/phoenixpgs/guardian-api/internal/handler/interchange"
	observationHandler "github.com/phoenixpgs/guardian-api/internal/handler/observation"
	organizationHandler "github.com/phoenixpgs/guardian-api/internal/handler/organization"
	rbacHandler "github.com/phoenixpgs/guardian-api/internal/handler/rbac"
	standardHandler "github.com/phoenixpgs/guardian-api/internal/handler/standard"
	userHandler "github.com/phoenixpgs/guardian-api/internal/handler/user"
	"github.com/phoenixpgs/guardian-api/internal/middleware"
	"github.com/phoenixpgs/guardian-api/internal/repository/postgres"
	"github.com/phoenixpgs/guardian-api/internal/router"
	areaService "github.com/phoenixpgs/guardian-api/internal/service/area"
	departmentService "github.com/phoenixpgs/guardian-api/internal/service/department"
	"github.com/phoenixpgs/guardian-api/internal/service/exporter"
	facilityService "github.com/phoenixpgs/guardian-api/internal/service/facility"
	"github.com/phoenixpgs/guardian-api/internal/service/importer"
	observationService "github.com/phoenixpgs/guardian-api/internal/service/observation"
	organizationService "github.com/phoenixpgs/guardian-api/internal/service/organization"
	rbacService "github.com/phoenixpgs/guardian-api/internal/service/rbac"
	standardService "github.com/phoenixpgs/guardian-api/internal/service/standard"
	userService "github.com/phoenixpgs/guardian-api/internal/service/user"
	"github.com/phoenixpgs/guardian-api/pkg/logger"
)

func main() {
	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	organizationRepo := postgres.NewOrganizationRepository(base)
	facilityRepo := postgres.NewFacilityRepository(base)
	departmentRepo := postgres.NewDepartmentRepository(base)
	areaRepo := postgres.NewAreaRepository(base)
	standardRepo := postgres.NewStandardRepository(base)
	userRepo := postgres.NewUserRepository(base)
	rbacRepo := postgres.NewRBACRepository(base)
	observationRepo := postgres.NewObservationRepository(base)

	organizationSvc := organizationService.NewService(organizationRepo)
	facilitySvc := facilityService.NewService(facilityRepo, organizationRepo)
	departmentSvc := departmentService.NewService(departmentRepo, facilityRepo)
	areaSvc := areaService.NewService(areaRepo, departmentRepo)
	standardSvc := standardService.NewService(standardRepo, areaRepo)
	userSvc := userService.NewService(userRepo)
	rbacSvc := rbacService.NewService(rbacRepo)
	observationSvc := observationService.NewService(observationRepo, standardRepo)
	importerSvc := importer.NewService()
	exporterSvc := exporter.NewService(db)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT, rbacSvc)
	tenantMiddleware := middleware.NewTenantMiddleware(organizationSvc, middleware.DefaultTenantConfig())

	registry := prometheus.NewRegistry()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		tenantMiddleware,
		router.Handlers{
			Organization: organizationHandler.NewHandler(organizationSvc),
			Facility:     facilityHandler.NewHandler(facilitySvc),
			Department:   departmentHandler.NewHandler(departmentSvc),
			Area:         areaHandler.NewHandler(areaSvc),
			Standard:     standardHandler.NewHandler(standardSvc),
			User:         userHandler.NewHandler(userSvc),
			RBAC:         rbacHandler.NewHandler(rbacSvc),
			Observation:  observationHandler.NewHandler(observationSvc),
			Interchange:  interchangeHandler.NewHandler(db, importerSvc, exporterSvc),
			Health:       healthHandler.NewHandler(db, registry),
		},
		registry,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    corsConfig,
			MetricsPrefix: "guardian",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
