package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toyz/tsport/internal/errors"
)

type response struct {
	status int
	header http.Header
	body   []byte
}

// do sends req through the named engine without opening a socket
func do(t *testing.T, engine string, req *http.Request) response {
	t.Helper()
	srv, err := New(Config{Engine: engine}, zap.NewNop())
	require.NoError(t, err)

	switch transport := srv.Transport().(type) {
	case *FiberTransport:
		resp, err := transport.App().Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return response{status: resp.StatusCode, header: resp.Header, body: body}
	case interface{ Handler() http.Handler }:
		rec := httptest.NewRecorder()
		transport.Handler().ServeHTTP(rec, req)
		return response{status: rec.Code, header: rec.Header(), body: rec.Body.Bytes()}
	default:
		t.Fatalf("transport %T cannot be exercised in tests", transport)
		return response{}
	}
}

func translateRequest(query, body string) *http.Request {
	target := "/v1/translate"
	if query != "" {
		target += "?" + query
	}
	return httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
}

var engines = []string{"gin", "echo", "fiber"}

func TestTranslate(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			resp := do(t, engine, translateRequest("", "interface person { name: string; age?: number; } /** derive: Clone; **/"))
			require.Equal(t, http.StatusOK, resp.status)

			var body TranslateResponse
			require.NoError(t, json.Unmarshal(resp.body, &body))
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, body.RequestID, resp.header.Get(HeaderRequestID))
			require.Len(t, body.Definitions, 1)
			assert.Equal(t, "Person", body.Definitions[0].Name)
			assert.Equal(t, "Option<f64>", body.Definitions[0].Fields[1].Type)
			assert.Equal(t, []string{"Debug", "Clone"}, body.Definitions[0].Derives)
		})
	}
}

func TestTranslate_QueryOverrides(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			resp := do(t, engine, translateRequest("serde=true", "interface A {}"))
			require.Equal(t, http.StatusOK, resp.status)
			var body TranslateResponse
			require.NoError(t, json.Unmarshal(resp.body, &body))
			assert.Equal(t, []string{"Debug", "serde::Serialize", "serde::Deserialize"}, body.Definitions[0].Derives)

			resp = do(t, engine, translateRequest("strict=1", "interface A { b: B; }"))
			assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
		})
	}
}

func TestTranslate_Rejected(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			req := translateRequest("", "interface A {\n  a: string | number;\n}")
			req.Header.Set(HeaderRequestID, "req-123")
			resp := do(t, engine, req)
			require.Equal(t, http.StatusUnprocessableEntity, resp.status)
			assert.Equal(t, "req-123", resp.header.Get(HeaderRequestID))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(resp.body, &body))
			assert.Equal(t, "req-123", body.RequestID)
			assert.Equal(t, "UnknownTypeError", body.Error.Code)
			assert.Equal(t, `unsupported type "string | number": unions are not supported`, body.Error.Message)
			assert.Equal(t, 2, body.Error.Line)
			assert.Equal(t, 6, body.Error.Column)
			assert.NotEmpty(t, body.Error.Hints)
		})
	}
}

func TestTranslate_BadQuery(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			resp := do(t, engine, translateRequest("serde=maybe", "interface A {}"))
			assert.Equal(t, http.StatusBadRequest, resp.status)
			assert.JSONEq(t, `{"error":"query parameter serde must be a boolean"}`, string(resp.body))
		})
	}
}

func TestTranslate_BodyTooLarge(t *testing.T) {
	body := "interface A {}\n// " + strings.Repeat("x", MaxBodyBytes)
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			resp := do(t, engine, translateRequest("", body))
			assert.Equal(t, http.StatusRequestEntityTooLarge, resp.status)
		})
	}
}

func TestHealth(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			resp := do(t, engine, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, resp.status)
			assert.JSONEq(t, `{"status":"ok"}`, string(resp.body))
			assert.NotEmpty(t, resp.header.Get(HeaderRequestID))
		})
	}
}

func TestNew(t *testing.T) {
	srv, err := New(Config{Engine: "Echo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "echo", srv.Transport().Name())
	assert.Equal(t, defaultShutdownTimeout, srv.config.ShutdownTimeout)

	_, err = New(Config{Engine: "netty"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.Contains(t, errors.Hints(err), "Use one of: echo, fiber, gin")
}
