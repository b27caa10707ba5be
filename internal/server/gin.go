package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinTransport serves handlers through a gin engine
type GinTransport struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinTransport creates a transport around a bare gin engine
func NewGinTransport() *GinTransport {
	gin.SetMode(gin.ReleaseMode)
	return &GinTransport{engine: gin.New()}
}

// RegisterRoute registers a route with the engine
func (gt *GinTransport) RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, middleware := range middlewares {
		handlers = append(handlers, gt.convertMiddleware(middleware))
	}
	handlers = append(handlers, gt.convertHandler(handler))
	gt.engine.Handle(method, path, handlers...)
}

// Use registers a global middleware
func (gt *GinTransport) Use(middleware MiddlewareFunc) {
	gt.engine.Use(gt.convertMiddleware(middleware))
}

// Start serves until Stop is called
func (gt *GinTransport) Start(addr string) error {
	gt.server = &http.Server{Addr: addr, Handler: gt.engine}
	if err := gt.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (gt *GinTransport) Stop(ctx context.Context) error {
	if gt.server == nil {
		return nil
	}
	return gt.server.Shutdown(ctx)
}

// Name returns the transport name
func (gt *GinTransport) Name() string {
	return "gin"
}

// Handler exposes the engine for httptest
func (gt *GinTransport) Handler() http.Handler {
	return gt.engine
}

func (gt *GinTransport) convertHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&ginContext{ctx: c}); err != nil {
			code, body := errorBody(err)
			c.JSON(code, body)
		}
	}
}

func (gt *GinTransport) convertMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := func(RequestContext) error {
			c.Next()
			return nil
		}
		if err := middleware(next)(&ginContext{ctx: c}); err != nil {
			code, body := errorBody(err)
			c.AbortWithStatusJSON(code, body)
		}
	}
}

type ginContext struct {
	ctx *gin.Context
}

func (gc *ginContext) Context() context.Context { return gc.ctx.Request.Context() }
func (gc *ginContext) Method() string { return gc.ctx.Request.Method }
func (gc *ginContext) Path() string { return gc.ctx.Request.URL.Path }
func (gc *ginContext) QueryParam(key string) string { return gc.ctx.Query(key) }
func (gc *ginContext) Header(key string) string { return gc.ctx.GetHeader(key) }
func (gc *ginContext) SetHeader(key, value string) { gc.ctx.Header(key, value) }
func (gc *ginContext) Set(key string, val interface{}) { gc.ctx.Set(key, val) }
func (gc *ginContext) Status() int { return gc.ctx.Writer.Status() }

func (gc *ginContext) Body() ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(gc.ctx.Writer, gc.ctx.Request.Body, MaxBodyBytes))
}

func (gc *ginContext) Get(key string) interface{} {
	value, _ := gc.ctx.Get(key)
	return value
}

func (gc *ginContext) JSON(code int, i interface{}) error {
	gc.ctx.JSON(code, i)
	return nil
}
