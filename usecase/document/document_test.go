package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/repository"
)

// fakeRepo is an in-memory gateway with injectable failures.
type fakeRepo struct {
	docs map[string]domain.Document

	insertAttempts int
	failInsertAt   int // 1-based attempt that fails; 0 disables
	failDelete     map[string]error
	deleted        []string
	getCalls       int
	updates        []map[string]interface{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:       make(map[string]domain.Document),
		failDelete: make(map[string]error),
	}
}

func (f *fakeRepo) Insert(_ context.Context, doc *domain.Document) (string, error) {
	f.insertAttempts++
	if f.failInsertAt > 0 && f.insertAttempts == f.failInsertAt {
		return "", errors.New("write timeout")
	}
	id := fmt.Sprintf("id-%d", f.insertAttempts)
	doc.IDDocument = id
	f.docs[id] = *doc
	return id, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if err := f.failDelete[id]; err != nil {
		return err
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	f.getCalls++
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

func (f *fakeRepo) FindByField(context.Context, domain.SearchField, string, repository.PageOptions) (*repository.Page, error) {
	return &repository.Page{}, nil
}

func (f *fakeRepo) FindByFieldIn(context.Context, domain.SearchField, []string) ([]domain.Document, error) {
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	f.updates = append(f.updates, fields)
	return nil
}

func (f *fakeRepo) seed(ids ...string) {
	for _, id := range ids {
		f.docs[id] = domain.Document{IDDocument: id, IDAsset: "asset-" + id}
	}
}

func draft(asset string) domain.Document {
	return domain.Document{
		IDAsset:      asset,
		OwnerAddress: "owner",
		Operation:    domain.OperationCreation,
		Process:      "p",
		Nature:       "n",
		Stage:        "s",
		Data:         []interface{}{map[string]interface{}{"k": "v"}},
		DataHash:     "h",
		ChannelName:  "ch",
		DateTime:     "2024-05-01T10:00:00Z",
	}
}

func TestAddDocumentsAssignsIDsInOrder(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)

	ids, err := uc.AddDocuments(context.Background(), []domain.Document{
		draft("a1"), draft("a2"), draft("a3"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, ids)
	assert.Len(t, repo.docs, 3)
}

func TestAddDocumentsEmptyInput(t *testing.T) {
	uc := New(newFakeRepo(), nil)
	_, err := uc.AddDocuments(context.Background(), nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestAddDocumentsRollsBackOnMidBatchFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failInsertAt = 2
	uc := New(repo, nil)

	_, err := uc.AddDocuments(context.Background(), []domain.Document{
		draft("a1"), draft("a2"), draft("a3"),
	})

	var pf *domain.PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, 1, pf.FailedIndex)
	assert.Equal(t, []string{"id-1"}, pf.Inserted)
	assert.True(t, pf.RolledBack)
	assert.EqualError(t, pf.Err, "write timeout")

	// The third document is never attempted and the first is gone.
	assert.Equal(t, 2, repo.insertAttempts)
	assert.Empty(t, repo.docs)
	assert.Equal(t, []string{"id-1"}, repo.deleted)
}

func TestAddDocumentsRollbackFailureDoesNotMaskInsertError(t *testing.T) {
	repo := newFakeRepo()
	repo.failInsertAt = 3
	uc := New(repo, nil)

	docs := []domain.Document{draft("a1"), draft("a2"), draft("a3")}
	// Make the first compensating delete fail; the second must still run.
	repo.failDelete["id-1"] = errors.New("unavailable")

	_, err := uc.AddDocuments(context.Background(), docs)

	var pf *domain.PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.False(t, pf.RolledBack)
	assert.EqualError(t, pf.Err, "write timeout")
	// Rollback continued past the failed delete.
	assert.Equal(t, []string{"id-2"}, repo.deleted)
}

func TestRemoveDocumentsAbortsAtFirstMissing(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1", "id3")
	uc := New(repo, nil)

	removed, err := uc.RemoveDocuments(context.Background(), []string{"id1", "id2", "id3"})

	assert.Equal(t, 1, removed)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
	assert.Contains(t, err.Error(), "id2")

	// id1 stays deleted, id3 untouched.
	_, ok := repo.docs["id1"]
	assert.False(t, ok)
	_, ok = repo.docs["id3"]
	assert.True(t, ok)
}

func TestRemoveDocumentsAll(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1", "id2")
	uc := New(repo, nil)

	removed, err := uc.RemoveDocuments(context.Background(), []string{"id1", "id2"})

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, repo.docs)
}

func TestUpdateDocumentsFiltersToAllowList(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1")
	uc := New(repo, nil)

	updated, err := uc.UpdateDocuments(context.Background(), []string{"id1"}, map[string]interface{}{
		"status":       "CONFIRMED",
		"blockNumber":  int64(99),
		"ownerAddress": "evil", // immutable, must be dropped
	})

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, map[string]interface{}{
		"status":      "CONFIRMED",
		"blockNumber": int64(99),
	}, repo.updates[0])
}

func TestUpdateDocumentsCoercesDecodedJSONNumbers(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1")
	uc := New(repo, nil)

	// Decode a real request body: encoding/json turns every number into
	// float64, and the store requires int64 for the bigint column.
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(
		[]byte(`{"blockNumber":123,"amount":1.5,"status":"CONFIRMED"}`), &fields))

	updated, err := uc.UpdateDocuments(context.Background(), []string{"id1"}, fields)

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, int64(123), repo.updates[0]["blockNumber"])
	assert.Equal(t, 1.5, repo.updates[0]["amount"])
}

func TestUpdateDocumentsEmptyAfterMappingIsNoop(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1")
	uc := New(repo, nil)

	updated, err := uc.UpdateDocuments(context.Background(), []string{"id1"}, map[string]interface{}{
		"ownerAddress": "x",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, updated)
	assert.Zero(t, repo.getCalls, "no-op must not touch storage")
	assert.Empty(t, repo.updates)
}

func TestUpdateDocumentsAbortsAtFirstMissing(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1", "id3")
	uc := New(repo, nil)

	updated, err := uc.UpdateDocuments(context.Background(), []string{"id1", "id2", "id3"},
		map[string]interface{}{"status": "X"})

	assert.Equal(t, 1, updated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id2")
	assert.Len(t, repo.updates, 1)
}

func TestGetDocument(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("id1")
	uc := New(repo, nil)

	doc, err := uc.GetDocument(context.Background(), "id1")
	require.NoError(t, err)
	assert.Equal(t, "id1", doc.IDDocument)

	_, err = uc.GetDocument(context.Background(), "nope")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
