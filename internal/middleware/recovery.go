package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500 JSON body. The stack trace is included only when exposeDetails is set.
func Recovery(log *logrus.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			stack := string(debug.Stack())
			log.WithFields(logrus.Fields{
				"panic":  fmt.Sprint(rec),
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error("recovered from panic")

			body := gin.H{"error": "internal server error"}
			if exposeDetails {
				body["details"] = fmt.Sprintf("%v\n%s", rec, stack)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}
