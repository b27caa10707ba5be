package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/pkg/tsport"
)

// TranslateResponse is the success body of POST /v1/translate
type TranslateResponse struct {
	RequestID   string              `json:"request_id"`
	Definitions []models.Definition `json:"definitions"`
}

// ErrorResponse is the failure body of POST /v1/translate
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a rejected document
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Line    int      `json:"line,omitempty"`
	Column  int      `json:"column,omitempty"`
	Hints   []string `json:"hints,omitempty"`
}

// Handlers serves the translation endpoints
type Handlers struct {
	logger *zap.Logger
	serde  bool
	strict bool
}

// NewHandlers creates handlers whose serde and strict defaults can be
// overridden per request with query parameters
func NewHandlers(logger *zap.Logger, serde, strict bool) *Handlers {
	return &Handlers{logger: logger, serde: serde, strict: strict}
}

// Health reports liveness
func (h *Handlers) Health(ctx RequestContext) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Translate translates the request body as one document
func (h *Handlers) Translate(ctx RequestContext) error {
	serde, err := boolParam(ctx, "serde", h.serde)
	if err != nil {
		return err
	}
	strict, err := boolParam(ctx, "strict", h.strict)
	if err != nil {
		return err
	}

	body, err := ctx.Body()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewHTTPError(http.StatusRequestEntityTooLarge, "request body exceeds "+strconv.Itoa(MaxBodyBytes)+" bytes", err)
		}
		return NewHTTPError(http.StatusBadRequest, "failed to read request body", err)
	}

	requestID := RequestIDFrom(ctx)
	definitions, err := tsport.TranslateDefinitions(string(body),
		tsport.WithSerde(serde),
		tsport.WithStrict(strict),
	)
	if err != nil {
		if !errors.IsTranslationError(err) {
			return err
		}
		h.logger.Debug("document rejected",
			zap.String("request_id", requestID),
			zap.String("code", errors.CodeOf(err).String()),
			zap.Error(err))
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			RequestID: requestID,
			Error:     errorDetail(err),
		})
	}

	return ctx.JSON(http.StatusOK, TranslateResponse{
		RequestID:   requestID,
		Definitions: definitions,
	})
}

func errorDetail(err error) ErrorDetail {
	loc := errors.LocationOf(err)
	return ErrorDetail{
		Code:    errors.CodeOf(err).String(),
		Message: errors.MessageOf(err),
		Line:    loc.Line,
		Column:  loc.Column,
		Hints:   errors.Hints(err),
	}
}

func boolParam(ctx RequestContext, name string, fallback bool) (bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, NewHTTPError(http.StatusBadRequest, "query parameter "+name+" must be a boolean", err)
	}
	return value, nil
}
