package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	httpAdapter "github.com/khoahotran/rentredi/adapters/http"
	"github.com/khoahotran/rentredi/pkg/logger"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func NewRouter(h *Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		httpAdapter.RequestLogger(log),
		httpAdapter.RecoveryMiddleware(log, false),
	)
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl")))

	router.GET("/", h.Index)
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	ui := router.Group("/ui")
	{
		ui.POST("/users", h.CreateUser)
		ui.POST("/users/:id", h.UpdateUser)
		ui.POST("/users/:id/delete", h.DeleteUser)
		ui.POST("/refresh", h.Refresh)
	}
	return router
}
