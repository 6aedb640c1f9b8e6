// Package ingest writes documents into the vector store so the retrieval
// pipeline has something to search.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ragbot/ragbot/services/embedding"
	"ragbot/ragbot/services/vectorstore"
	"ragbot/ragbot/utils/logging"
)

// Indexer embeds document texts and upserts them into the store.
type Indexer struct {
	embedder embedding.Embedder
	store    vectorstore.Store
}

func NewIndexer(embedder embedding.Embedder, store vectorstore.Store) *Indexer {
	return &Indexer{embedder: embedder, store: store}
}

// Index embeds each text and stores it under a fresh uuid. Returns how many
// documents were written.
func (ix *Indexer) Index(ctx context.Context, texts []string) (int, error) {
	defer logging.LogDuration(ctx, "ingest_index")()

	if len(texts) == 0 {
		return 0, nil
	}

	vectors, err := ix.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding documents: %w", err)
	}

	points := make([]vectorstore.Point, len(texts))
	for i, text := range texts {
		points[i] = vectorstore.Point{
			ID:      uuid.New().String(),
			Vector:  vectors[i],
			Content: text,
		}
	}
	if err := ix.store.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("storing documents: %w", err)
	}

	logging.AppLogger.Info("documents indexed", zap.Int("count", len(points)))
	return len(points), nil
}
