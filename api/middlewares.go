package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) statsdMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		tags := []string{"path:" + c.Path(), "plugin:" + s.plugin.Name()}
		if method := c.Param("method"); method != "" {
			tags = append(tags, "plugin_method:"+method)
		}
		_ = s.sdClient.Incr("http.requests", tags, 1)
		_ = s.sdClient.Timing("http.response_time", time.Since(start), tags, 1)
		_ = s.sdClient.Incr("http.status."+fmt.Sprint(c.Response().Status), append(tags, "method:"+c.Request().Method), 1)

		return err
	}
}
