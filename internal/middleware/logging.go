package middleware

import (
	"plastwarehouse/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestID assigns a UUID request id unless the client sent X-Request-ID.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger puts a request-scoped zap logger in the request context and
// emits one log line per request.
func RequestLogger(base *zap.Logger) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With(zap.String("request_id", reqID))
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithLogger(req.Context(), l)))
			return next(c)
		}
	}

	logLine := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			l := logger.FromContext(c.Request().Context())
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				l.Warn("http_request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			l.Info("http_request", fields...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return attach(logLine(next))
	}
}

// Recover logs panics with the request logger and turns them into 500 responses.
func Recover() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisablePrintStack: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.FromContext(c.Request().Context()).Error("panic recovered",
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return err
		},
	})
}
