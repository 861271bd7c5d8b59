package cassandra

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/repository"
)

// batchValueCap bounds the rows fetched per value in batch mode. Batch
// lookups are unpaginated, so this is a safety net well above any sane
// page size rather than a contract.
const batchValueCap = 5000

type documentRepository struct {
	session *gocql.Session
	logger  *zap.Logger
}

// NewDocumentRepository returns a Cassandra-backed implementation of
// DocumentRepository. The session is safe for concurrent use; the repository
// adds no locking of its own.
func NewDocumentRepository(session *gocql.Session, logger *zap.Logger) repository.DocumentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentRepository{session: session, logger: logger}
}

func (r *documentRepository) Insert(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidPayload
	}

	// The id is assigned exactly once, here. Callers never supply one.
	doc.IDDocument = uuid.NewString()
	doc.CreatedAt = time.Now().UTC()

	rec := toStorageRecord(doc, r.logger)

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, columns, placeholders)
	if err := r.session.Query(stmt,
		rec.ID,
		rec.IDAsset,
		rec.OwnerAddress,
		rec.Operation,
		rec.Process,
		rec.Nature,
		rec.Stage,
		rec.Data,
		rec.DataHash,
		rec.ChannelName,
		rec.DateTime,
		rec.HashTransaction,
		rec.BlockNumber,
		rec.StatusTransaction,
		rec.Status,
		rec.Amount,
		rec.InitialAmount,
		rec.IDOrg,
		rec.OwnershipType,
		rec.GroupedBy,
		rec.GroupedAssets,
		rec.IDExternal,
		rec.IDPersonTarget,
		rec.IDLocalTarget,
		rec.AmountMoved,
		rec.CreatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return "", err
	}

	return rec.ID, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE id_document = ?", table)
	return r.session.Query(stmt, id).WithContext(ctx).Exec()
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE id_document = ?", columns, table)

	var rec record
	if err := scanInto(r.session.Query(stmt, id).WithContext(ctx), &rec); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return fromRecord(&rec), nil
}

func (r *documentRepository) FindByField(ctx context.Context, field domain.SearchField, value string, opts repository.PageOptions) (*repository.Page, error) {
	size := opts.PageSize
	if size <= 0 {
		size = repository.DefaultPageSize
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", columns, table, columnFor(string(field)))
	iter := r.session.Query(stmt, value).
		WithContext(ctx).
		PageSize(size).
		PageState(opts.PageState).
		Iter()

	// NumRows is the size of the fetched page; iterating past it would pull
	// further pages behind the cursor's back.
	n := iter.NumRows()
	docs := make([]domain.Document, 0, n)
	for i := 0; i < n; i++ {
		var rec record
		if !scanIter(iter, &rec) {
			break
		}
		docs = append(docs, *fromRecord(&rec))
	}

	next := iter.PageState()
	if err := iter.Close(); err != nil {
		return nil, err
	}
	if len(next) == 0 {
		next = nil
	}
	return &repository.Page{Documents: docs, PageState: next}, nil
}

func (r *documentRepository) FindByFieldIn(ctx context.Context, field domain.SearchField, values []string) ([]domain.Document, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) > repository.MaxBatchValues {
		return nil, domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("batch lookup limited to %d values", repository.MaxBatchValues))
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", columns, table, columnFor(string(field)))

	// One query per value, issued concurrently. Results are slotted by the
	// value's position so the merged output follows input order, not
	// completion order.
	perValue := make([][]domain.Document, len(values))
	g, gctx := errgroup.WithContext(ctx)
	for i, value := range values {
		g.Go(func() error {
			docs, err := r.fetchAll(gctx, stmt, value)
			if err != nil {
				return err
			}
			perValue[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.Document
	for _, docs := range perValue {
		merged = append(merged, docs...)
	}
	return merged, nil
}

// fetchAll drains every row matching one value, up to batchValueCap.
func (r *documentRepository) fetchAll(ctx context.Context, stmt, value string) ([]domain.Document, error) {
	iter := r.session.Query(stmt, value).WithContext(ctx).PageSize(batchValueCap).Iter()

	var docs []domain.Document
	for len(docs) < batchValueCap {
		var rec record
		if !scanIter(iter, &rec) {
			break
		}
		docs = append(docs, *fromRecord(&rec))
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	assignments, args := buildUpdate(fields)
	if len(assignments) == 0 {
		return nil
	}

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id_document = ?", table, strings.Join(assignments, ", "))
	args = append(args, id)
	return r.session.Query(stmt, args...).WithContext(ctx).Exec()
}

// buildUpdate translates external field names to columns and renders the SET
// clause in a stable key order.
func buildUpdate(fields map[string]interface{}) ([]string, []interface{}) {
	if len(fields) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		assignments = append(assignments, columnFor(k)+" = ?")
		args = append(args, fields[k])
	}
	return assignments, args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInto(s scanner, rec *record) error {
	return s.Scan(
		&rec.ID,
		&rec.IDAsset,
		&rec.OwnerAddress,
		&rec.Operation,
		&rec.Process,
		&rec.Nature,
		&rec.Stage,
		&rec.Data,
		&rec.DataHash,
		&rec.ChannelName,
		&rec.DateTime,
		&rec.HashTransaction,
		&rec.BlockNumber,
		&rec.StatusTransaction,
		&rec.Status,
		&rec.Amount,
		&rec.InitialAmount,
		&rec.IDOrg,
		&rec.OwnershipType,
		&rec.GroupedBy,
		&rec.GroupedAssets,
		&rec.IDExternal,
		&rec.IDPersonTarget,
		&rec.IDLocalTarget,
		&rec.AmountMoved,
		&rec.CreatedAt,
	)
}

func scanIter(iter *gocql.Iter, rec *record) bool {
	return iter.Scan(
		&rec.ID,
		&rec.IDAsset,
		&rec.OwnerAddress,
		&rec.Operation,
		&rec.Process,
		&rec.Nature,
		&rec.Stage,
		&rec.Data,
		&rec.DataHash,
		&rec.ChannelName,
		&rec.DateTime,
		&rec.HashTransaction,
		&rec.BlockNumber,
		&rec.StatusTransaction,
		&rec.Status,
		&rec.Amount,
		&rec.InitialAmount,
		&rec.IDOrg,
		&rec.OwnershipType,
		&rec.GroupedBy,
		&rec.GroupedAssets,
		&rec.IDExternal,
		&rec.IDPersonTarget,
		&rec.IDLocalTarget,
		&rec.AmountMoved,
		&rec.CreatedAt,
	)
}
