package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/middleware"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/internal/usecase"
	"github.com/sakibmtatva/online-job-portal-be/pkg/security"
	"github.com/sakibmtatva/online-job-portal-be/pkg/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	JobUC          domain.JobUsecase
	ColumnUC       domain.ColumnUsecase
	ApplicationUC  domain.ApplicationUsecase
	MeetingUC      domain.MeetingUsecase
	NotificationUC domain.NotificationUsecase
	BookmarkUC     domain.BookmarkUsecase
	HealthUC       usecase.HealthUsecase

	Auth           middleware.AuthConfig
	AllowedOrigins []string
	// Redis is optional; rate limiting falls back to process memory.
	Redis           *goredis.Client
	RateLimit       int
	RateLimitWindow time.Duration
	SecurityLogger  *security.SecurityLogger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // before anything that can abort
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Success(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := v1.Group("")

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth, deps.AuthUC, deps.SecurityLogger))
	protected.Use(middleware.RateLimitMiddleware(
		middleware.DefaultRateLimitConfig(deps.RateLimit, deps.RateLimitWindow),
		deps.Redis,
		deps.SecurityLogger,
	))

	employers := protected.Group("/employers")
	employers.Use(middleware.RequireRole(domain.RoleEmployer, deps.SecurityLogger))

	candidates := protected.Group("/candidates")
	candidates.Use(middleware.RequireRole(domain.RoleCandidate, deps.SecurityLogger))

	NewAuthHandler(protected, deps.AuthUC)
	NewJobHandler(public, employers, deps.JobUC)
	NewColumnHandler(employers, deps.ColumnUC)
	NewApplicationHandler(candidates, employers, deps.ApplicationUC, deps.SecurityLogger)
	NewMeetingHandler(protected, employers, candidates, deps.MeetingUC)
	NewNotificationHandler(protected, deps.NotificationUC)
	NewBookmarkHandler(candidates, deps.BookmarkUC)

	return r
}
