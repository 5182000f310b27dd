package httptransport

import (
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emailbook/backend/internal/config"
	"emailbook/backend/internal/middleware"
	"emailbook/backend/internal/monitoring"
	"emailbook/backend/internal/service"
)

// indexBody 根路径的固定响应体
const indexBody = "Validations Technical Lesson"

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config              *config.Config
	EmailAddressService *service.EmailAddressService
	Metrics             *monitoring.Metrics
	Logger              *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(1 << 20)) // 1MB

	if deps.Metrics != nil {
		mm := middleware.NewMonitoringMiddleware(deps.Metrics, log)
		router.Use(mm.PanicRecovery())
		router.Use(mm.HTTPMetrics())
	} else {
		router.Use(gin.Recovery())
	}

	if deps.Config != nil {
		corsConfig := gincors.Config{
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}
		if len(deps.Config.CORS.AllowedOrigins) == 1 && deps.Config.CORS.AllowedOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = deps.Config.CORS.AllowedOrigins
		}
		router.Use(gincors.New(corsConfig))

		rl := middleware.NewRateLimiter(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst, deps.Metrics)
		router.Use(rl.Handler())
	}

	// 根路径：固定文本响应，用于确认进程存活
	router.GET("/", func(c *gin.Context) {
		c.String(200, indexBody)
	})

	// 邮箱地址记录 API
	handler := NewEmailAddressHandler(deps.EmailAddressService, deps.Metrics)
	v1 := router.Group("/v1")
	{
		v1.POST("/email-addresses", handler.Create)
		v1.GET("/email-addresses", handler.List)
		v1.GET("/email-addresses/:id", handler.Get)
		v1.PATCH("/email-addresses/:id", handler.Update)
	}

	return router
}
