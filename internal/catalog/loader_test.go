package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	books []Book
	err   error
	calls int
}

func (f *fakeFetcher) ListBooks(ctx context.Context) ([]Book, error) {
	f.calls++
	return f.books, f.err
}

func TestLoader_FetchFailureFallsBackToSamples(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	loader := NewLoader(fetcher, nil, nil)

	got := loader.Load(context.Background())

	require.Equal(t, SampleBooks(), got)
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoader_EmptyPayloadFallsBackToSamples(t *testing.T) {
	loader := NewLoader(&fakeFetcher{}, nil, nil)
	got := loader.Load(context.Background())
	require.Equal(t, SampleBooks(), got)
}

func TestLoader_BackfillsMissingCoversCyclically(t *testing.T) {
	remote := []Book{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", CoverImage: "https://example.com/b.jpg"},
		{ID: "c", Title: "C"},
	}
	sample := func() []Book {
		return []Book{
			{ID: "s1", CoverImage: "cover-1"},
			{ID: "s2", CoverImage: "cover-2"},
		}
	}
	loader := NewLoader(&fakeFetcher{books: remote}, sample, nil)

	got := loader.Load(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, "cover-1", got[0].CoverImage, "index 0 takes sample 0")
	assert.Equal(t, "https://example.com/b.jpg", got[1].CoverImage, "present covers are kept")
	assert.Equal(t, "cover-1", got[2].CoverImage, "index 2 wraps around modulo sample size")
}

func TestLoader_CustomSampleProviderIsUsed(t *testing.T) {
	custom := []Book{{ID: "only", Title: "Only Book"}}
	loader := NewLoader(&fakeFetcher{err: errors.New("down")}, func() []Book { return custom }, nil)

	got := loader.Load(context.Background())
	require.Equal(t, custom, got)
}
