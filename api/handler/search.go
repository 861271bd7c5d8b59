package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/api/transport"
	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/pkg/httpcontext"
	searchUC "github.com/jminango20/data-docs-api/usecase/search"
)

type SearchHandler struct {
	baseHandler
	uc *searchUC.UseCase
}

func NewSearchHandler(uc *searchUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Search documents by asset id or transaction hash
// @Tags documents
// @Router /api/v1/documents/search [post]
func (h *SearchHandler) Search(ctx *fasthttp.RequestCtx) {
	var req transport.SearchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload", nil)
		return
	}
	if violations := transport.Validate(req); len(violations) > 0 {
		h.respondInvalid(ctx, "validation failed", violations)
		return
	}

	values := req.Values
	if req.Value != "" {
		if len(values) > 0 {
			h.respondInvalid(ctx, "value and values are mutually exclusive", nil)
			return
		}
		values = []string{req.Value}
	}
	if len(values) == 0 {
		h.respondInvalid(ctx, "either value or values is required", nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Search(stdCtx, searchUC.Query{
		Field:     domain.SearchField(req.Field),
		Values:    values,
		PageSize:  req.PageSize,
		PageState: req.PageState,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	var meta interface{}
	if result.PageState != "" {
		meta = map[string]string{"pageState": result.PageState}
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(result.Documents, meta))
}
