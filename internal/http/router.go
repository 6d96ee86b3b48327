package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"teamboard/internal/config"
	"teamboard/internal/http/controller"
	"teamboard/internal/http/middleware"
	"teamboard/internal/metrics"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, auth middleware.Authorizer, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/api/pushalert-webhook", handler.PushAlertWebhook)
	router.POST("/api/pushalert-webhook", handler.PushAlertWebhook)

	api := router.Group("/api", middleware.Identity())
	{
		notifications := api.Group("/notifications")
		notifications.GET("", handler.ListNotifications)
		notifications.GET("/stream", handler.Stream)
		notifications.POST("/read-all", handler.MarkAllRead)
		notifications.POST("/push-sync", handler.SyncPush)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.DELETE("/:id", handler.DeleteNotification)

		api.GET("/reports", handler.ListReports)
		api.PUT("/reports/:date", handler.UpsertReport)

		todos := api.Group("/todos")
		todos.GET("", handler.ListTodos)
		todos.POST("", handler.CreateTodo)
		todos.POST("/complete-all", handler.CompleteAllTodos)
		todos.PATCH("/:id", handler.UpdateTodo)
		todos.DELETE("/:id", handler.DeleteTodo)
	}

	adminAPI := router.Group("/admin/api", middleware.Identity(), middleware.RequireAdmin(auth, logger))
	{
		adminAPI.GET("/users", handler.ListUsers)
		adminAPI.GET("/recipients", handler.ListRecipients)
		adminAPI.POST("/notifications", handler.CreateNotification)
		adminAPI.PUT("/notifications", handler.Broadcast)
		adminAPI.POST("/notifications/publish", handler.PublishBroadcast)
	}

	return router
}
