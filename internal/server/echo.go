package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EchoTransport serves handlers through an echo instance
type EchoTransport struct {
	echo *echo.Echo
}

// NewEchoTransport creates a transport around a quiet echo instance
func NewEchoTransport() *EchoTransport {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, map[string]interface{}{"error": he.Message})
			return
		}
		code, body := errorBody(err)
		_ = c.JSON(code, body)
	}
	return &EchoTransport{echo: e}
}

// RegisterRoute registers a route with echo
func (et *EchoTransport) RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, 0, len(middlewares))
	for _, middleware := range middlewares {
		echoMiddlewares = append(echoMiddlewares, et.convertMiddleware(middleware))
	}
	et.echo.Add(method, path, et.convertHandler(handler), echoMiddlewares...)
}

// Use registers a global middleware
func (et *EchoTransport) Use(middleware MiddlewareFunc) {
	et.echo.Use(et.convertMiddleware(middleware))
}

// Start serves until Stop is called
func (et *EchoTransport) Start(addr string) error {
	if err := et.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (et *EchoTransport) Stop(ctx context.Context) error {
	return et.echo.Shutdown(ctx)
}

// Name returns the transport name
func (et *EchoTransport) Name() string {
	return "echo"
}

// Handler exposes the echo instance for httptest
func (et *EchoTransport) Handler() http.Handler {
	return et.echo
}

func (et *EchoTransport) convertHandler(handler HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handler(&echoContext{ctx: c})
	}
}

func (et *EchoTransport) convertMiddleware(middleware MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			wrapped := middleware(func(RequestContext) error {
				return next(c)
			})
			return wrapped(&echoContext{ctx: c})
		}
	}
}

type echoContext struct {
	ctx echo.Context
}

func (ec *echoContext) Context() context.Context { return ec.ctx.Request().Context() }
func (ec *echoContext) Method() string { return ec.ctx.Request().Method }
func (ec *echoContext) Path() string { return ec.ctx.Request().URL.Path }
func (ec *echoContext) QueryParam(key string) string { return ec.ctx.QueryParam(key) }
func (ec *echoContext) Header(key string) string { return ec.ctx.Request().Header.Get(key) }
func (ec *echoContext) SetHeader(key, value string) { ec.ctx.Response().Header().Set(key, value) }
func (ec *echoContext) Get(key string) interface{} { return ec.ctx.Get(key) }
func (ec *echoContext) Set(key string, val interface{}) { ec.ctx.Set(key, val) }
func (ec *echoContext) Status() int { return ec.ctx.Response().Status }

func (ec *echoContext) Body() ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(ec.ctx.Response(), ec.ctx.Request().Body, MaxBodyBytes))
}

func (ec *echoContext) JSON(code int, i interface{}) error {
	return ec.ctx.JSON(code, i)
}
