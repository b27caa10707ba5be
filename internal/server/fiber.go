package server

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FiberTransport serves handlers through a fiber app
type FiberTransport struct {
	app *fiber.App
}

// NewFiberTransport creates a transport around a fiber app whose error
// handler renders JSON
func NewFiberTransport() *FiberTransport {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             MaxBodyBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return &FiberTransport{app: app}
}

// RegisterRoute registers a route with the app
func (ft *FiberTransport) RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, middleware := range middlewares {
		handlers = append(handlers, convertFiberMiddleware(middleware))
	}
	handlers = append(handlers, convertFiberHandler(handler))
	ft.app.Add(strings.ToUpper(method), path, handlers...)
}

// Use registers a global middleware
func (ft *FiberTransport) Use(middleware MiddlewareFunc) {
	ft.app.Use(convertFiberMiddleware(middleware))
}

// Start serves until Stop is called
func (ft *FiberTransport) Start(addr string) error {
	return ft.app.Listen(addr)
}

// Stop shuts the app down gracefully
func (ft *FiberTransport) Stop(ctx context.Context) error {
	return ft.app.ShutdownWithContext(ctx)
}

// Name returns the transport name
func (ft *FiberTransport) Name() string {
	return "fiber"
}

// App exposes the fiber app for app.Test
func (ft *FiberTransport) App() *fiber.App {
	return ft.app
}

func convertFiberHandler(handler HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(&fiberContext{ctx: c}); err != nil {
			code, body := errorBody(err)
			return c.Status(code).JSON(body)
		}
		return nil
	}
}

func convertFiberMiddleware(middleware MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := middleware(func(RequestContext) error {
			return c.Next()
		})(&fiberContext{ctx: c})
		if err != nil {
			code, body := errorBody(err)
			return c.Status(code).JSON(body)
		}
		return nil
	}
}

type fiberContext struct {
	ctx *fiber.Ctx
}

func (fc *fiberContext) Context() context.Context { return fc.ctx.UserContext() }
func (fc *fiberContext) Method() string { return fc.ctx.Method() }
func (fc *fiberContext) Path() string { return fc.ctx.Path() }
func (fc *fiberContext) QueryParam(key string) string { return fc.ctx.Query(key) }
func (fc *fiberContext) Header(key string) string { return fc.ctx.Get(key) }
func (fc *fiberContext) SetHeader(key, value string) { fc.ctx.Set(key, value) }
func (fc *fiberContext) Get(key string) interface{} { return fc.ctx.Locals(key) }
func (fc *fiberContext) Set(key string, val interface{}) { fc.ctx.Locals(key, val) }
func (fc *fiberContext) Status() int { return fc.ctx.Response().StatusCode() }

// Body copies the request body, which fiber reuses after the handler returns
func (fc *fiberContext) Body() ([]byte, error) {
	return append([]byte(nil), fc.ctx.Body()...), nil
}

func (fc *fiberContext) JSON(code int, i interface{}) error {
	return fc.ctx.Status(code).JSON(i)
}
