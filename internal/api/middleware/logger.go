package middleware

import (
	"fmt"
	"time"

	"crickstore/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request. The migration progress endpoint is
// excluded: frontends poll it every second while a run is active and the
// noise drowns out everything else.
func Logger(logger *logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/v1/migration/progress"},
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("[%s] %s %s %d %s %s\n",
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency,
				param.ClientIP,
			)
		},
	})
}
