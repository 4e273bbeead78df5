package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classtrack/config"
	"classtrack/internal/api/handler"
	"classtrack/internal/api/middleware"
	"classtrack/pkg/jwt"
	"classtrack/pkg/redis"
)

// maxBodyBytes 请求体大小上限（日程录入均为小 JSON）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录/注册带速率限制）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/users/me/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetMe)
				users.PUT("/me", h.User.UpdateMe)
			}

			// 日程模块
			schedule := authorized.Group("/schedules")
			{
				schedule.POST("", h.Schedule.Create)
				schedule.GET("", h.Schedule.List)
				schedule.DELETE("", h.Schedule.Clear)
				schedule.GET("/:id", h.Schedule.Get)
				schedule.PUT("/:id", h.Schedule.Update)
				schedule.DELETE("/:id", h.Schedule.Delete)
			}

			// 仪表盘与提醒轮询
			authorized.GET("/dashboard", h.Dashboard.Dashboard)
			authorized.GET("/reminders", h.Dashboard.Reminders)

			// 日历模块
			calendar := authorized.Group("/calendar")
			{
				calendar.GET("/events", h.Calendar.Events)
				calendar.GET("/export.ics", h.Calendar.ExportICS)
			}

			// 管理面板（仅管理员）
			admin := authorized.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/stats", h.Admin.Stats)
				admin.GET("/stats/export", h.Admin.ExportStats)
				admin.GET("/users", h.Admin.ListUsers)
				admin.PUT("/users/:id/promote", h.Admin.Promote)
				admin.PUT("/users/:id/demote", h.Admin.Demote)
			}
		}
	}

	return r
}
