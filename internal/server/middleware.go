package server

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID stores the request id in the request context
const contextKeyRequestID = "request_id"

// RequestID echoes the client's X-Request-ID or assigns a fresh uuid v4
func RequestID() MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) error {
			id := ctx.Header(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			ctx.Set(contextKeyRequestID, id)
			ctx.SetHeader(HeaderRequestID, id)
			return next(ctx)
		}
	}
}

// RequestIDFrom returns the id assigned by RequestID
func RequestIDFrom(ctx RequestContext) string {
	if id, ok := ctx.Get(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// AccessLog logs one line per request
func AccessLog(logger *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) error {
			start := time.Now()
			err := next(ctx)

			fields := []zap.Field{
				zap.String("request_id", RequestIDFrom(ctx)),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Int("status", ctx.Status()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				logger.Error("request failed", append(fields, zap.Error(err))...)
			} else {
				logger.Info("request", fields...)
			}
			return err
		}
	}
}

// Recover turns handler panics into 500 responses
func Recover(logger *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic",
						zap.String("request_id", RequestIDFrom(ctx)),
						zap.Any("panic", r))
					err = NewHTTPError(500)
				}
			}()
			return next(ctx)
		}
	}
}
