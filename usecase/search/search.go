package search

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/repository"
)

// Query describes a secondary lookup. One value means singular mode with
// cursor pagination; several values mean batch mode, where pagination
// parameters are deliberately ignored.
type Query struct {
	Field     domain.SearchField
	Values    []string
	PageSize  int
	PageState string
}

// Result is a page (or the full batch union) of matching documents.
// PageState is the opaque continuation cursor; it is always empty for batch
// lookups and for final pages.
type Result struct {
	Documents []domain.Document `json:"documents"`
	PageState string            `json:"pageState,omitempty"`
}

// UseCase resolves singular-vs-batch query modes over the gateway.
type UseCase struct {
	docs   repository.DocumentRepository
	logger *zap.Logger
}

func New(docs repository.DocumentRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		docs:   docs,
		logger: logger,
	}
}

// Search runs the lookup and returns a not-found signal when the result set
// is empty, in either mode.
func (uc *UseCase) Search(ctx context.Context, q Query) (*Result, error) {
	if !domain.IsValidSearchField(string(q.Field)) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown search field")
	}
	switch {
	case len(q.Values) == 0:
		return nil, domain.NewError(domain.ErrCodeInvalid, "at least one lookup value is required")
	case len(q.Values) > repository.MaxBatchValues:
		return nil, domain.NewError(domain.ErrCodeInvalid, "too many lookup values")
	case len(q.Values) == 1:
		return uc.searchOne(ctx, q)
	default:
		return uc.searchMany(ctx, q)
	}
}

func (uc *UseCase) searchOne(ctx context.Context, q Query) (*Result, error) {
	state, err := decodeCursor(q.PageState)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "malformed page state", err)
	}

	page, err := uc.docs.FindByField(ctx, q.Field, q.Values[0], repository.PageOptions{
		PageSize:  q.PageSize,
		PageState: state,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Documents) == 0 {
		return nil, domain.ErrNoDocuments
	}
	return &Result{
		Documents: page.Documents,
		PageState: encodeCursor(page.PageState),
	}, nil
}

func (uc *UseCase) searchMany(ctx context.Context, q Query) (*Result, error) {
	if q.PageSize > 0 || q.PageState != "" {
		uc.logger.Debug("pagination parameters ignored for batch lookup",
			zap.Int("values", len(q.Values)))
	}

	docs, err := uc.docs.FindByFieldIn(ctx, q.Field, q.Values)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	return &Result{Documents: docs}, nil
}

func encodeCursor(state []byte) string {
	if len(state) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(state)
}

func decodeCursor(cursor string) ([]byte, error) {
	if cursor == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(cursor)
}
