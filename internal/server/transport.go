// Package server exposes translation over HTTP. Handlers are written against
// a small framework-agnostic request context and mounted on gin, echo or
// fiber through a Transport.
package server

import (
	"context"
	"fmt"
	"net/http"
)

// Transport is an HTTP framework that routes requests to handlers
type Transport interface {
	// Route registration
	RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Global middleware, registered before any route
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	Name() string
}

// RequestContext is the per-request view handlers and middleware work with
type RequestContext interface {
	Context() context.Context
	Method() string
	Path() string
	QueryParam(key string) string

	Header(key string) string
	SetHeader(key, value string)
	// Body fails with *http.MaxBytesError past MaxBodyBytes
	Body() ([]byte, error)

	Get(key string) interface{}
	Set(key string, val interface{})

	// Status returns the response status once written
	Status() int
	JSON(code int, i interface{}) error
}

// MaxBodyBytes bounds the request body read by RequestContext.Body
const MaxBodyBytes = 1 << 20

// HandlerFunc handles one request
type HandlerFunc func(RequestContext) error

// MiddlewareFunc wraps a handler
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// HTTPError is returned by handlers to produce a non-2xx JSON response
type HTTPError struct {
	Code     int         `json:"code"`
	Message  interface{} `json:"message"`
	Internal error       `json:"-"`
}

// Error makes HTTPError implement the error interface
func (he *HTTPError) Error() string {
	if he.Internal != nil {
		return he.Internal.Error()
	}
	return fmt.Sprint(he.Message)
}

// Unwrap returns the internal error
func (he *HTTPError) Unwrap() error {
	return he.Internal
}

// NewHTTPError creates an HTTPError. The message defaults to the status
// text; a second argument that is an error becomes the internal cause.
func NewHTTPError(code int, message ...interface{}) *HTTPError {
	he := &HTTPError{Code: code, Message: http.StatusText(code)}
	if len(message) > 0 {
		he.Message = message[0]
	}
	if len(message) > 1 {
		if err, ok := message[1].(error); ok {
			he.Internal = err
		}
	}
	return he
}

// errorBody is written when a handler returns an error it did not render
func errorBody(err error) (int, map[string]interface{}) {
	if httpErr, ok := err.(*HTTPError); ok {
		return httpErr.Code, map[string]interface{}{"error": httpErr.Message}
	}
	return http.StatusInternalServerError, map[string]interface{}{"error": err.Error()}
}
