package document

import (
	"context"

	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/repository"
)

// UseCase orchestrates multi-document batch operations on top of the
// persistence gateway.
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

// AddDocuments inserts the documents strictly in input order and returns the
// assigned ids. If an insert fails, every id created so far is deleted
// best-effort before the original failure is reported; a rollback failure is
// logged but never masks that failure. Rollback is not transactional: a
// crash mid-rollback can leave documents behind.
func (uc *UseCase) AddDocuments(ctx context.Context, docs []domain.Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, domain.ErrInvalidPayload
	}

	inserted := make([]string, 0, len(docs))
	for i := range docs {
		id, err := uc.docs.Insert(ctx, &docs[i])
		if err != nil {
			uc.logger.Error("document insert failed, rolling back batch",
				zap.Int("index", i),
				zap.Int("inserted_so_far", len(inserted)),
				zap.Error(err))
			rolledBack := uc.rollback(ctx, inserted)
			return nil, &domain.PartialFailure{
				FailedIndex: i,
				Inserted:    inserted,
				RolledBack:  rolledBack,
				Err:         err,
			}
		}
		inserted = append(inserted, id)
	}
	return inserted, nil
}

// rollback deletes the given ids, continuing past individual failures.
// It reports whether every delete succeeded.
func (uc *UseCase) rollback(ctx context.Context, ids []string) bool {
	ok := true
	for _, id := range ids {
		if err := uc.docs.Delete(ctx, id); err != nil {
			uc.logger.Error("rollback delete failed",
				zap.String("id_document", id),
				zap.Error(err))
			ok = false
		}
	}
	return ok
}

// RemoveDocuments deletes the documents in input order, verifying existence
// before each delete. The first missing id aborts the batch with a not-found
// error naming it; deletions already performed stand.
func (uc *UseCase) RemoveDocuments(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidPayload
	}

	removed := 0
	for _, id := range ids {
		if _, err := uc.docs.GetByID(ctx, id); err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return removed, domain.NotFoundID(id)
			}
			return removed, err
		}
		if err := uc.docs.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// UpdateDocuments applies the allow-listed field updates to every id, with
// the same existence-check-then-abort semantics as removal. Fields outside
// the allow-list are dropped; a map left empty after that is a successful
// no-op that never reaches storage.
func (uc *UseCase) UpdateDocuments(ctx context.Context, ids []string, fields map[string]interface{}) (int, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidPayload
	}

	allowed := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := domain.UpdatableFields[k]; ok {
			allowed[k] = domain.NormalizeUpdateValue(k, v)
		} else {
			uc.logger.Warn("dropping non-updatable field", zap.String("field", k))
		}
	}
	if len(allowed) == 0 {
		return 0, nil
	}

	updated := 0
	for _, id := range ids {
		if _, err := uc.docs.GetByID(ctx, id); err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return updated, domain.NotFoundID(id)
			}
			return updated, err
		}
		if err := uc.docs.Update(ctx, id, allowed); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// GetDocument returns a single document by its id.
func (uc *UseCase) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.docs.GetByID(ctx, id)
}
