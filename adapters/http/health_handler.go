package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Welcome(c *gin.Context) {
	c.String(http.StatusOK, msgWelcome)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: msgRouteNotFound})
}
