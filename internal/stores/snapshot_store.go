package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/filestorages"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

//go:generate mockgen -source=snapshot_store.go -destination=./mocks/snapshot_store_mock.go -package=mocks
type SnapshotStore interface {
	// Put replaces the published snapshot.
	Put(ctx context.Context, snapshot models.Snapshot) error
	// Get returns the published snapshot, or ErrSnapshotNotFound before the first Put.
	Get(ctx context.Context) (models.Snapshot, error)
}

type snapshotStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewSnapshotStore(fileStorage filestorages.FileStorage, key string) SnapshotStore {
	return &snapshotStore{fileStorage: fileStorage, key: key}
}

func (s *snapshotStore) Put(ctx context.Context, snapshot models.Snapshot) error {
	if snapshot == nil {
		snapshot = models.Snapshot{}
	}
	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		metricStoreWritesTotal.WithLabelValues(storeSnapshot, outcomeFailed).Inc()
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	jsonData = append(jsonData, '\n')

	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		metricStoreWritesTotal.WithLabelValues(storeSnapshot, outcomeFailed).Inc()
		return fmt.Errorf("failed to put snapshot: %w", err)
	}

	metricStoreWritesTotal.WithLabelValues(storeSnapshot, outcomeOK).Inc()
	metricStoreBytesWritten.WithLabelValues(storeSnapshot).Set(float64(len(jsonData)))
	return nil
}

func (s *snapshotStore) Get(ctx context.Context) (models.Snapshot, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	for key, leaderboard := range snapshot {
		if leaderboard == nil {
			snapshot[key] = models.Leaderboard{}
		}
	}
	return snapshot, nil
}
