package middleware

import (
	"fleethvac/internal/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs each request with zap and stores a request-scoped logger on the context
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				return
			}
			ctx := logger.WithContext(c.Request().Context(), log.With(zap.String("request_id", reqID)))
			c.SetRequest(c.Request().WithContext(ctx))
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			reqLog := logger.FromContext(c.Request().Context(), log)
			switch {
			case v.Error != nil || v.Status >= 500:
				reqLog.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Status >= 400:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
			return nil
		},
	})
}
