package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/filestorages"
)

var ErrPageNotFound = errors.New("page not found")

//go:generate mockgen -source=page_store.go -destination=./mocks/page_store_mock.go -package=mocks
type PageStore interface {
	// Put replaces the published leaderboard page.
	Put(ctx context.Context, page []byte) error
	// Get returns the published page, or ErrPageNotFound before the first Put.
	Get(ctx context.Context) ([]byte, error)
}

type pageStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewPageStore(fileStorage filestorages.FileStorage, key string) PageStore {
	return &pageStore{fileStorage: fileStorage, key: key}
}

func (s *pageStore) Put(ctx context.Context, page []byte) error {
	_, err := s.fileStorage.Put(ctx, s.key, bytes.NewReader(page), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		metricStoreWritesTotal.WithLabelValues(storePage, outcomeFailed).Inc()
		return fmt.Errorf("failed to put page: %w", err)
	}
	metricStoreWritesTotal.WithLabelValues(storePage, outcomeOK).Inc()
	metricStoreBytesWritten.WithLabelValues(storePage).Set(float64(len(page)))
	return nil
}

func (s *pageStore) Get(ctx context.Context) ([]byte, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	defer readCloser.Close()

	page, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	return page, nil
}
