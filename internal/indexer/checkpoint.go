package indexer

import (
	"context"
	"fmt"

	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// Checkpoint is the last block height a pass fully processed.
type Checkpoint struct {
	Height int64
}

// CheckpointTracker reads and writes the checkpoint of one named indexer.
type CheckpointTracker struct {
	store storage.CheckpointStore
	name  string
}

func NewCheckpointTracker(store storage.CheckpointStore, name string) *CheckpointTracker {
	return &CheckpointTracker{store: store, name: name}
}

// Get returns the stored checkpoint, or genesis when none has been committed yet.
func (t *CheckpointTracker) Get(ctx context.Context, genesis int64) (Checkpoint, error) {
	height, found, err := t.store.Get(ctx, t.name)
	if err != nil {
		return Checkpoint{}, wrapSentinel(storage.ErrCheckpoint, fmt.Sprintf("read checkpoint %q", t.name), err)
	}
	if !found {
		return Checkpoint{Height: genesis}, nil
	}
	return Checkpoint{Height: height}, nil
}

// Set overwrites the checkpoint unconditionally.
func (t *CheckpointTracker) Set(ctx context.Context, cp Checkpoint) error {
	if err := t.store.Set(ctx, t.name, cp.Height); err != nil {
		return wrapSentinel(storage.ErrCheckpoint, fmt.Sprintf("write checkpoint %q", t.name), err)
	}
	return nil
}
