package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts panics into a structured 500. In development the stack
// trace goes into the body; elsewhere the message is generalized so internals
// never leak.
func Recovery(log *zap.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", stack),
				)
				body := gin.H{
					"status":  http.StatusInternalServerError,
					"message": "Something went wrong! Please try again later.",
				}
				if env == "development" {
					body["message"] = fmt.Sprint(r)
					body["stackTrace"] = stack
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}

// NoRoute answers unmatched paths with a descriptive 404.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  http.StatusNotFound,
			"message": fmt.Sprintf("Can't find the valid endpoint %s on this server!", c.Request.URL.Path),
		})
	}
}
