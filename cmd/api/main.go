package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/domain"
	"taskboard/internal/middleware"
	"taskboard/internal/modules/auth"
	"taskboard/internal/modules/events"
	"taskboard/internal/modules/org"
	"taskboard/internal/modules/project"
	"taskboard/internal/modules/section"
	"taskboard/internal/modules/task"
	"taskboard/internal/pkg/token"
	"taskboard/internal/repository"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
		&domain.Organization{},
		&domain.Membership{},
		&domain.Project{},
		&domain.Section{},
		&domain.Task{},
	); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := token.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	hub := events.NewHub()
	defer hub.Close()
	publisher := events.NewPublisher(hub, orgRepo)

	authService := auth.NewService(userRepo, orgRepo, refreshRepo, tokens, cfg.AccessTTLLabel)
	authHandler := auth.NewHandler(authService)

	orgService := org.NewService(orgRepo)
	orgHandler := org.NewHandler(orgService)

	projectService := project.NewService(projectRepo)
	projectHandler := project.NewHandler(projectService)

	sectionService := section.NewService(sectionRepo)
	sectionHandler := section.NewHandler(sectionService)

	taskService := task.NewService(taskRepo, sectionRepo, orgRepo, publisher)
	taskHandler := task.NewHandler(taskService)

	eventsHandler := events.NewHandler(hub, tokens)

	mc := middleware.NewMembershipChecker(orgRepo, projectRepo, sectionRepo, taskRepo)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.ErrorLogger(!cfg.IsProd()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics())

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		r.Use(middleware.RateLimit(rdb, cfg.RateLimitMax, cfg.RateLimitWindow))
		slog.Info("rate limiting enabled", "addr", cfg.RedisAddr, "max", cfg.RateLimitMax, "window", cfg.RateLimitWindow)
	}

	r.GET("/health", healthHandler(hub))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			orgHandler.RegisterRoutes(protected, mc)
			projectHandler.RegisterRoutes(protected, mc)
			sectionHandler.RegisterRoutes(protected, mc)
			taskHandler.RegisterRoutes(protected, mc)
		}
	}

	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func healthHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"websocketClients": hub.OnlineCount(),
		})
	}
}
