package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Fetcher is the remote side of the base collection. Implemented by the
// REST client; tests substitute fakes.
type Fetcher interface {
	ListBooks(ctx context.Context) ([]Book, error)
}

// SampleProvider supplies the fallback dataset. Injectable so the fallback
// can be swapped or tested independently of fetch logic.
type SampleProvider func() []Book

// Loader produces the base collection: remote when reachable, the sample
// set otherwise. Load never fails; a fetch error is logged and absorbed.
type Loader struct {
	fetcher Fetcher
	sample  SampleProvider
	logger  *zap.Logger
}

// NewLoader builds a loader. A nil sample provider falls back to the
// bundled dataset.
func NewLoader(fetcher Fetcher, sample SampleProvider, logger *zap.Logger) *Loader {
	if sample == nil {
		sample = SampleBooks
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, sample: sample, logger: logger}
}

// Load fetches the base collection. On success, entries missing a cover are
// backfilled cyclically from the sample set — a cosmetic fill, not a data
// repair. On failure or an empty payload the sample set is returned
// unchanged.
func (l *Loader) Load(ctx context.Context) []Book {
	fallback := l.sample()

	books, err := l.fetcher.ListBooks(ctx)
	if err != nil {
		l.logger.Warn("book fetch failed, using sample collection", zap.Error(err))
		return fallback
	}
	if len(books) == 0 {
		l.logger.Info("backend returned no books, using sample collection")
		return fallback
	}

	for i := range books {
		if books[i].CoverImage == "" && len(fallback) > 0 {
			books[i].CoverImage = fallback[i%len(fallback)].CoverImage
		}
	}
	return books
}
