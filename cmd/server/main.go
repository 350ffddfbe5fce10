package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"teamboard.backend/internal/config"
	"teamboard.backend/internal/infrastructure/models"
	"teamboard.backend/internal/infrastructure/repositories"
	"teamboard.backend/internal/interfaces/http/handlers"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/realtime"
	"teamboard.backend/internal/usecases"
	"teamboard.backend/pkg/jwt"
	"teamboard.backend/pkg/logger"
	"teamboard.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis (presence store)
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	if err := db.AutoMigrate(
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvite{},
		&models.Project{},
		&models.Issue{},
		&models.Label{},
		&models.IssueLabel{},
		&models.Todo{},
		&models.TeamEvent{},
		&models.IssueEvent{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	teamRepo := repositories.NewTeamRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	inviteRepo := repositories.NewInviteRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	todoRepo := repositories.NewTodoRepository(db)
	labelRepo := repositories.NewLabelRepository(db)
	issueLabelRepo := repositories.NewIssueLabelRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	teamEventRepo := repositories.NewTeamEventRepository(db)
	issueEventRepo := repositories.NewIssueEventRepository(db)
	presenceRepo := repositories.NewPresenceRepository(redis.GetClient())
	uow := repositories.NewUnitOfWork(db)

	// Realtime bus for SSE fan-out
	bus := realtime.NewBus()

	// Initialize usecases
	authzUsecase := usecases.NewAuthzUsecase(memberRepo)
	teamUsecase := usecases.NewTeamUsecase(teamRepo, memberRepo, authzUsecase, uow)
	inviteUsecase := usecases.NewInviteUsecase(inviteRepo, teamRepo, memberRepo, authzUsecase, uow, cfg.Invite.TTL)
	issueUsecase := usecases.NewIssueUsecase(issueRepo, issueEventRepo, teamEventRepo, projectRepo, authzUsecase, uow, bus)
	todoUsecase := usecases.NewTodoUsecase(todoRepo, teamEventRepo, authzUsecase, uow, bus)
	labelUsecase := usecases.NewLabelUsecase(labelRepo, issueLabelRepo, issueRepo, authzUsecase)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, teamEventRepo, authzUsecase, uow, bus)
	activityUsecase := usecases.NewActivityUsecase(teamEventRepo, memberRepo, issueRepo, todoRepo, projectRepo, authzUsecase)
	presenceUsecase := usecases.NewPresenceUsecase(presenceRepo, memberRepo, authzUsecase, cfg.Presence.Window)

	// Initialize handlers
	teamHandler := handlers.NewTeamHandler(teamUsecase)
	inviteHandler := handlers.NewInviteHandler(inviteUsecase)
	issueHandler := handlers.NewIssueHandler(issueUsecase)
	todoHandler := handlers.NewTodoHandler(todoUsecase)
	labelHandler := handlers.NewLabelHandler(labelUsecase)
	projectHandler := handlers.NewProjectHandler(projectUsecase)
	activityHandler := handlers.NewActivityHandler(activityUsecase, bus)
	presenceHandler := handlers.NewPresenceHandler(presenceUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		teamHandler:     teamHandler,
		inviteHandler:   inviteHandler,
		issueHandler:    issueHandler,
		todoHandler:     todoHandler,
		labelHandler:    labelHandler,
		projectHandler:  projectHandler,
		activityHandler: activityHandler,
		presenceHandler: presenceHandler,
		authMiddleware:  authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
	}()

	// Start server
	log.Printf("🚀 Teamboard Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
