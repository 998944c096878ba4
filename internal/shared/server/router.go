package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/admin"
	"ats-checker/internal/llm"
	"ats-checker/internal/llm/anthropic"
	"ats-checker/internal/llm/groq"
	"ats-checker/internal/llm/openai"
	"ats-checker/internal/processing"
	"ats-checker/internal/resumes"
	"ats-checker/internal/services/health"
	"ats-checker/internal/sessions"
	"ats-checker/internal/shared/config"
	"ats-checker/internal/shared/metrics"
	"ats-checker/internal/shared/server/middleware"
	"ats-checker/internal/shared/server/respond"
	"ats-checker/internal/shared/storage/db"
	"ats-checker/internal/shared/storage/object"
	localstore "ats-checker/internal/shared/storage/object/local"
	s3store "ats-checker/internal/shared/storage/object/s3"
	"ats-checker/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.SessionID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/upload_resume") {
					return "UPLOAD"
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"UPLOAD":  {Rate: 0.5, Burst: 5},
			},
		}),
	)

	// Dependencies
	store, storeType := newObjectStore(cfg)
	sqlDB := connectDatabase(cfg)

	settings := processing.NewStore(cfg)
	overrides := newOverrideStore(cfg)
	registry := llm.NewRegistry(
		openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel),
		anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel),
	)

	var usersRepo users.UsersRepo
	var sessionsRepo sessions.SessionsRepo
	var resumesRepo resumes.ResumesRepo
	if sqlDB != nil {
		usersRepo = &users.PGRepo{DB: sqlDB}
		sessionsRepo = &sessions.PGRepo{DB: sqlDB}
		resumesRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		usersRepo = users.NewMemoryRepo()
		sessionsRepo = sessions.NewMemoryRepo()
		resumesRepo = resumes.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{
		Settings:  settings,
		Overrides: overrides,
		Registry:  registry,
		Users:     users.NewService(usersRepo),
		Sessions:  sessions.NewService(sessionsRepo),
		Repo:      resumesRepo,
		Store:     store,
		StoreType: storeType,
	}
	resumeHandler := resumes.NewHandler(resumeSvc, registry)
	adminHandler := admin.NewHandler(settings, overrides, registry)
	healthSvc := health.NewService(sqlDB, registry, storeType)

	r.GET("/health", func(c *gin.Context) {
		status := healthSvc.Status(c.Request.Context())
		code := http.StatusOK
		if status["ok"] != true {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	resumeHandler.RegisterRoutes(api)
	adminHandler.RegisterRoutes(api.Group("/admin", middleware.AdminAuth(cfg.ConfigAPIKey)))

	return r
}

func newObjectStore(cfg config.Config) (object.ObjectStore, string) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store, "s3"
		}
	}
	return localstore.New(cfg.LocalStoreDir), "local"
}

func connectDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(context.Background(), conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return conn
}

func newOverrideStore(cfg config.Config) processing.OverrideStore {
	if cfg.RedisAddr == "" {
		return processing.NewMemoryOverrideStore()
	}
	store, err := processing.NewRedisOverrideStore(context.Background(), cfg.RedisAddr)
	if err != nil {
		log.Printf("failed to connect redis, using in-memory overrides: %v", err)
		return processing.NewMemoryOverrideStore()
	}
	return store
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
