package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/rentredi/pkg/logger"
)

type RouterDeps struct {
	UserHandler  *UserHandler
	Logger       logger.Logger
	IncludeStack bool

	// TracingService enables OpenTelemetry spans under this service name when non-empty.
	TracingService string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		RequestLogger(deps.Logger),
		MetricsMiddleware(),
		RecoveryMiddleware(deps.Logger, deps.IncludeStack),
		CORSMiddleware(),
		ErrorMiddleware(deps.Logger, deps.IncludeStack),
	)
	if deps.TracingService != "" {
		router.Use(otelgin.Middleware(deps.TracingService))
	}

	router.GET("/", Welcome)
	router.GET("/health", Health)
	router.GET("/health/ready", Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := router.Group("/users")
	{
		users.POST("", deps.UserHandler.CreateUser)
		users.GET("", deps.UserHandler.ListUsers)
		users.GET("/:id", deps.UserHandler.GetUser)
		users.PUT("/:id", deps.UserHandler.UpdateUser)
		users.DELETE("/:id", deps.UserHandler.DeleteUser)
	}

	router.NoRoute(RouteNotFound)
	return router
}
