package search

import (
	"context"
	"encoding/base64"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/repository"
)

// fakeRepo serves canned documents per lookup value and simulates cursor
// pagination by encoding the next offset into the page state.
type fakeRepo struct {
	byValue map[string][]domain.Document

	singleCalls int
	batchCalls  int
	lastOpts    repository.PageOptions
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byValue: make(map[string][]domain.Document)}
}

func (f *fakeRepo) seed(value string, n int) {
	for i := 0; i < n; i++ {
		f.byValue[value] = append(f.byValue[value], domain.Document{
			IDDocument: value + "-" + strconv.Itoa(i),
			IDAsset:    value,
		})
	}
}

func (f *fakeRepo) Insert(context.Context, *domain.Document) (string, error) { return "", nil }
func (f *fakeRepo) Delete(context.Context, string) error                     { return nil }
func (f *fakeRepo) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrDocumentNotFound
}
func (f *fakeRepo) Update(context.Context, string, map[string]interface{}) error { return nil }

func (f *fakeRepo) FindByField(_ context.Context, _ domain.SearchField, value string, opts repository.PageOptions) (*repository.Page, error) {
	f.singleCalls++
	f.lastOpts = opts

	matching := f.byValue[value]
	offset := 0
	if len(opts.PageState) > 0 {
		offset, _ = strconv.Atoi(string(opts.PageState))
	}
	size := opts.PageSize
	if size <= 0 {
		size = repository.DefaultPageSize
	}

	end := offset + size
	if end > len(matching) {
		end = len(matching)
	}
	page := &repository.Page{Documents: matching[offset:end]}
	if end < len(matching) {
		page.PageState = []byte(strconv.Itoa(end))
	}
	return page, nil
}

func (f *fakeRepo) FindByFieldIn(_ context.Context, _ domain.SearchField, values []string) ([]domain.Document, error) {
	f.batchCalls++
	var out []domain.Document
	for _, v := range values {
		out = append(out, f.byValue[v]...)
	}
	return out, nil
}

func TestSearchSinglePaginates(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("asset-1", 5)
	uc := New(repo, nil)

	first, err := uc.Search(context.Background(), Query{
		Field:    domain.SearchByAsset,
		Values:   []string{"asset-1"},
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Len(t, first.Documents, 2)
	require.NotEmpty(t, first.PageState, "a further page must yield a cursor")

	second, err := uc.Search(context.Background(), Query{
		Field:     domain.SearchByAsset,
		Values:    []string{"asset-1"},
		PageSize:  5,
		PageState: first.PageState,
	})
	require.NoError(t, err)
	assert.Len(t, second.Documents, 3)
	assert.Empty(t, second.PageState, "final page carries no cursor")
}

func TestSearchSingleThreadsPageOptions(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("asset-1", 1)
	uc := New(repo, nil)

	cursor := base64.StdEncoding.EncodeToString([]byte("0"))
	_, err := uc.Search(context.Background(), Query{
		Field:     domain.SearchByAsset,
		Values:    []string{"asset-1"},
		PageSize:  7,
		PageState: cursor,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, repo.lastOpts.PageSize)
	assert.Equal(t, []byte("0"), repo.lastOpts.PageState)
}

func TestSearchBatchPreservesValueOrderAndSuppressesCursor(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("A", 2)
	repo.seed("B", 1)
	uc := New(repo, nil)

	result, err := uc.Search(context.Background(), Query{
		Field:    domain.SearchByTransaction,
		Values:   []string{"A", "B"},
		PageSize: 1, // pagination is defined as unavailable in batch mode
	})
	require.NoError(t, err)

	require.Len(t, result.Documents, 3)
	assert.Equal(t, "A-0", result.Documents[0].IDDocument)
	assert.Equal(t, "A-1", result.Documents[1].IDDocument)
	assert.Equal(t, "B-0", result.Documents[2].IDDocument)
	assert.Empty(t, result.PageState)

	assert.Equal(t, 1, repo.batchCalls)
	assert.Zero(t, repo.singleCalls)
}

func TestSearchEmptyResultIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)

	_, err := uc.Search(context.Background(), Query{
		Field:  domain.SearchByAsset,
		Values: []string{"missing"},
	})
	assert.ErrorIs(t, err, domain.ErrNoDocuments)

	_, err = uc.Search(context.Background(), Query{
		Field:  domain.SearchByAsset,
		Values: []string{"m1", "m2"},
	})
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestSearchRejectsBadInput(t *testing.T) {
	uc := New(newFakeRepo(), nil)

	_, err := uc.Search(context.Background(), Query{Field: "bogus", Values: []string{"x"}})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Search(context.Background(), Query{Field: domain.SearchByAsset})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	tooMany := make([]string, repository.MaxBatchValues+1)
	for i := range tooMany {
		tooMany[i] = strconv.Itoa(i)
	}
	_, err = uc.Search(context.Background(), Query{Field: domain.SearchByAsset, Values: tooMany})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Search(context.Background(), Query{
		Field:     domain.SearchByAsset,
		Values:    []string{"x"},
		PageState: "%%%not-base64%%%",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
