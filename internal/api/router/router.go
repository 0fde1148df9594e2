package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/config"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/handler"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/middleware"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/authz"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/jwt"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// Deps 路由依赖
type Deps struct {
	Config     *config.Config
	Handler    *handler.Handler
	JWT        *jwt.Manager
	Authorizer *authz.Authorizer
	Limiter    middleware.RateLimiter // 可为 nil
	Logger     *zap.Logger
	// Health 健康检查，返回 nil 表示依赖可用
	Health func() error
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(d Deps) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(d.Config.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := d.Handler
	rl := d.Config.Server.RateLimit
	can := func(action, resource string) gin.HandlerFunc {
		return middleware.Authorize(d.Authorizer, d.Logger, action, resource)
	}

	// ── API v1（全部需要认证） ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(d.JWT))
	v1.Use(middleware.RateLimit(d.Limiter, rl.Limit, rl.Window))
	{
		// 类别模块
		categories := v1.Group("/categories")
		{
			categories.GET("", can(authz.ActionRead, "categories"), h.Category.List)
			categories.GET("/:id", can(authz.ActionRead, "categories"), h.Category.Get)
			categories.GET("/:id/documents", can(authz.ActionRead, "documents"), h.Category.Documents)
			categories.POST("", can(authz.ActionWrite, "categories"), h.Category.Create)
			categories.PATCH("/:id", can(authz.ActionWrite, "categories"), h.Category.Update)
			categories.DELETE("/:id", can(authz.ActionDelete, "categories"), h.Category.Delete)
		}

		// 标准模块
		standards := v1.Group("/standards")
		{
			standards.GET("", can(authz.ActionRead, "standards"), h.Standard.List)
			standards.GET("/:id", can(authz.ActionRead, "standards"), h.Standard.Get)
			standards.GET("/:id/documents", can(authz.ActionRead, "documents"), h.Standard.Documents)
			standards.GET("/:id/schedules", can(authz.ActionRead, "schedules"), h.Standard.Schedules)
			standards.POST("", can(authz.ActionWrite, "standards"), h.Standard.Create)
			standards.PATCH("/:id", can(authz.ActionWrite, "standards"), h.Standard.Update)
			standards.DELETE("/:id", can(authz.ActionDelete, "standards"), h.Standard.Delete)
		}

		// 用户模块
		users := v1.Group("/users")
		{
			users.GET("/me", h.User.GetCurrentUser)
			users.GET("", can(authz.ActionRead, "users"), h.User.List)
			users.GET("/:id", can(authz.ActionRead, "users"), h.User.Get)
			users.POST("", can(authz.ActionWrite, "users"), h.User.Create)
			users.PATCH("/:id", can(authz.ActionWrite, "users"), h.User.Update)
			users.DELETE("/:id", can(authz.ActionDelete, "users"), h.User.Delete)
		}

		// 文档模块
		documents := v1.Group("/documents")
		{
			documents.GET("", can(authz.ActionRead, "documents"), h.Document.List)
			documents.GET("/:id", can(authz.ActionRead, "documents"), h.Document.Get)
			documents.GET("/:id/history", can(authz.ActionRead, "documents"), h.Document.History)
			documents.POST("", can(authz.ActionWrite, "documents"), h.Document.Create)
			documents.PATCH("/:id", can(authz.ActionWrite, "documents"), h.Document.Update)
			documents.DELETE("/:id", can(authz.ActionDelete, "documents"), h.Document.Delete)
			documents.POST("/:id/approve", can(authz.ActionApprove, "documents"), h.Document.Approve)
			documents.POST("/:id/cancel", can(authz.ActionCancel, "documents"), h.Document.Cancel)
		}

		// 评审计划模块
		schedules := v1.Group("/schedules")
		{
			schedules.GET("", can(authz.ActionRead, "schedules"), h.Schedule.List)
			schedules.GET("/:id", can(authz.ActionRead, "schedules"), h.Schedule.Get)
			schedules.POST("", can(authz.ActionWrite, "schedules"), h.Schedule.Create)
			schedules.PATCH("/:id", can(authz.ActionWrite, "schedules"), h.Schedule.Update)
			schedules.DELETE("/:id", can(authz.ActionDelete, "schedules"), h.Schedule.Delete)
		}

		// 首页统计
		v1.GET("/dashboard/stats", can(authz.ActionRead, "dashboard"), h.Dashboard.Stats)

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/documents.xlsx", can(authz.ActionExport, "documents"), h.Export.ExportDocuments)
			export.GET("/schedules.ics", can(authz.ActionExport, "schedules"), h.Export.ExportSchedules)
		}
	}

	return r
}
