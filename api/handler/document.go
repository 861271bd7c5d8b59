package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/api/transport"
	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/pkg/httpcontext"
	documentUC "github.com/jminango20/data-docs-api/usecase/document"
)

type DocumentHandler struct {
	baseHandler
	uc *documentUC.UseCase
}

func NewDocumentHandler(uc *documentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Insert documents
// @Tags documents
// @Router /api/v1/documents [post]
func (h *DocumentHandler) AddDocuments(ctx *fasthttp.RequestCtx) {
	var req transport.AddDocumentsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload", nil)
		return
	}
	if violations := transport.Validate(req); len(violations) > 0 {
		h.respondInvalid(ctx, "validation failed", violations)
		return
	}

	docs := make([]domain.Document, 0, len(req.Documents))
	for i := range req.Documents {
		docs = append(docs, toDomain(&req.Documents[i]))
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ids, err := h.uc.AddDocuments(stdCtx, docs)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]interface{}{"idDocuments": ids})
}

// @Summary Remove documents
// @Tags documents
// @Router /api/v1/documents [delete]
func (h *DocumentHandler) RemoveDocuments(ctx *fasthttp.RequestCtx) {
	var req transport.RemoveDocumentsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload", nil)
		return
	}
	if violations := transport.Validate(req); len(violations) > 0 {
		h.respondInvalid(ctx, "validation failed", violations)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.RemoveDocuments(stdCtx, req.IDDocuments)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"removed": removed})
}

// @Summary Update documents
// @Tags documents
// @Router /api/v1/documents [patch]
func (h *DocumentHandler) UpdateDocuments(ctx *fasthttp.RequestCtx) {
	var req transport.UpdateDocumentsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload", nil)
		return
	}
	if violations := transport.Validate(req); len(violations) > 0 {
		h.respondInvalid(ctx, "validation failed", violations)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateDocuments(stdCtx, req.IDDocuments, req.Fields)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"updated": updated})
}

// @Summary Get one document
// @Tags documents
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) GetDocument(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing document id", nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.GetDocument(stdCtx, id)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, doc)
}

func toDomain(p *transport.DocumentPayload) domain.Document {
	return domain.Document{
		IDAsset:           p.IDAsset,
		OwnerAddress:      p.OwnerAddress,
		Operation:         domain.OperationKind(p.Operation),
		Process:           p.Process,
		Nature:            p.Nature,
		Stage:             p.Stage,
		Data:              p.Data,
		DataHash:          p.DataHash,
		ChannelName:       p.ChannelName,
		DateTime:          p.DateTime,
		HashTransaction:   p.HashTransaction,
		BlockNumber:       p.BlockNumber,
		StatusTransaction: p.StatusTransaction,
		Status:            p.Status,
		Amount:            p.Amount,
		InitialAmount:     p.InitialAmount,
		IDOrg:             p.IDOrg,
		OwnershipType:     p.OwnershipType,
		GroupedBy:         p.GroupedBy,
		GroupedAssets:     p.GroupedAssets,
		IDExternal:        p.IDExternal,
		IDPersonTarget:    p.IDPersonTarget,
		IDLocalTarget:     p.IDLocalTarget,
		AmountMoved:       p.AmountMoved,
	}
}
