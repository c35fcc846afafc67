// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"parkreg-service/internal/config"
	"parkreg-service/internal/db"
	adminHandler "parkreg-service/internal/handlers/admin"
	authHandler "parkreg-service/internal/handlers/auth"
	driverHandler "parkreg-service/internal/handlers/driver"
	vehicleHandler "parkreg-service/internal/handlers/vehicle"
	wsHandler "parkreg-service/internal/handlers/websocket"
	"parkreg-service/internal/middleware"
	"parkreg-service/internal/pkg/jwt"
	"parkreg-service/internal/pkg/session"
	"parkreg-service/internal/repository/postgres"
	authUsecase "parkreg-service/internal/service/auth"
	driverUsecase "parkreg-service/internal/service/driver"
	lifecycleUsecase "parkreg-service/internal/service/lifecycle"
	"parkreg-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Sessions & admin tokens -----
	sessionManager := session.NewManager(redisClient, s.cfg.SessionTTL)
	jwtManager := jwt.NewManager(s.cfg.JWT)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	applicantRepo := postgres.NewApplicantRepository(pool)

	// ----- Event hub -----
	hub := websocket.NewHub(logger)
	go hub.Run()

	// ----- Services -----
	lifecycleService := lifecycleUsecase.NewService(dbWrapper, vehicleRepo, driverRepo, hub, logger)
	driverService := driverUsecase.NewService(driverRepo, vehicleRepo, logger)
	authService := authUsecase.NewService(applicantRepo, sessionManager, jwtManager, logger)

	// ----- Handlers -----
	verbose := s.cfg.IsDevelopment()
	handlers := &Handlers{
		VehicleHandler: vehicleHandler.NewVehicleHandler(lifecycleService, driverService, verbose),
		DriverHandler:  driverHandler.NewDriverHandler(driverService, verbose),
		AdminHandler:   adminHandler.NewAdminHandler(lifecycleService, logger, verbose),
		AuthHandler:    authHandler.NewAuthHandler(authService, verbose),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, authService, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService),
	}

	SetupRouter(s.engine, logger, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))
	return s.engine.Run(s.cfg.HTTPAddr)
}
