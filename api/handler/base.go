package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/api/transport"
	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/pkg/httpcontext"
	appLogger "github.com/jminango20/data-docs-api/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	status, class := mapError(err)
	if status >= http.StatusInternalServerError {
		appLogger.WithRequestID(stdCtx, h.logger).Error("request failed",
			zap.Int("class", class),
			zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(class, err.Error(), nil))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string, fields []transport.FieldViolation) {
	h.respondJSON(ctx, http.StatusBadRequest,
		transport.NewError(domain.ErrCodeInvalid.Class(), message, fields))
}

func mapError(err error) (int, int) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, domain.ErrCodeInvalid.Class()
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, domain.ErrCodeNotFound.Class()
	case domain.IsDomainError(err, domain.ErrCodeConnection):
		return http.StatusServiceUnavailable, domain.ErrCodeConnection.Class()
	case domain.IsDomainError(err, domain.ErrCodePartialFailure):
		return http.StatusInternalServerError, domain.ErrCodePartialFailure.Class()
	default:
		return http.StatusInternalServerError, domain.ErrCodeInternal.Class()
	}
}
