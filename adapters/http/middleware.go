package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
	"github.com/khoahotran/rentredi/pkg/metrics"
)

// ErrorMiddleware renders the last error attached with c.Error. Stacks are only
// exposed when includeStack is set.
func ErrorMiddleware(log logger.Logger, includeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		fields := []zap.Field{zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path), zap.Int("status", status)}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.String("reason", apperror.Message(err)))...)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, apperror.ToJSON(err, includeStack))
	}
}

func RecoveryMiddleware(log logger.Logger, includeStack bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := apperror.NewAppError(apperror.ErrInternal, "Internal Server Error", fmt.Sprint(recovered), nil)
		log.Error("Panic recovered", err, zap.String("path", c.Request.URL.Path), zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperror.ToJSON(err, includeStack))
	})
}

// CORSMiddleware reflects the caller's origin and allows credentials.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			} else {
				h.Set("Access-Control-Allow-Headers", "Content-Type")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// MetricsMiddleware counts requests by route template so ids do not explode label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(strings.ToUpper(c.Request.Method), route, c.Writer.Status())
	}
}
