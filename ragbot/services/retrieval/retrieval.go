// Package retrieval runs similarity search over the embedded document
// collection: embed the query, search the vector store, rank the results.
// Each call is a stateless lookup; nothing is cached or deduplicated across
// calls.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ragbot/ragbot/services/embedding"
	"ragbot/ragbot/services/vectorstore"
	"ragbot/ragbot/utils/logging"
)

// DefaultTopK matches the reference behavior of three retrieved documents
// per query.
const DefaultTopK = 3

// ErrInvalidLimit reports a non-positive k. This is a caller error; it is
// never retried and never reaches the vector store.
var ErrInvalidLimit = errors.New("retrieval limit must be positive")

// RetrievalError wraps a failure from the embedding model or the vector
// store. Stage is "embed" or "search".
type RetrievalError struct {
	Stage string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed at %s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Document is one retrieved match. It lives only for the duration of a
// single retrieval cycle.
type Document struct {
	Content string
	// Score is the similarity reported by the store; higher is more
	// similar (cosine convention).
	Score float32
	// Rank is the position in the store's returned ordering, from 0.
	Rank int
}

// Pipeline executes similarity searches against external collaborators.
type Pipeline struct {
	embedder embedding.Embedder
	store    vectorstore.Store
	timeout  time.Duration
}

// NewPipeline wires a pipeline. A non-positive timeout disables the
// per-call deadline.
func NewPipeline(embedder embedding.Embedder, store vectorstore.Store, timeout time.Duration) *Pipeline {
	return &Pipeline{
		embedder: embedder,
		store:    store,
		timeout:  timeout,
	}
}

// Search embeds query and returns up to k documents in the store's own
// order, with ranks assigned 0..n-1. An empty collection is a valid empty
// result. Embedding or store failures come back as *RetrievalError.
func (p *Pipeline) Search(ctx context.Context, query string, k int) ([]Document, error) {
	defer logging.LogDuration(ctx, "retrieval_search")()

	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, k)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		logging.ErrorLogger.Error("query embedding failed", zap.Error(err))
		return nil, &RetrievalError{Stage: "embed", Err: err}
	}

	matches, err := p.store.Search(ctx, vector, k)
	if err != nil {
		logging.ErrorLogger.Error("vector search failed", zap.Error(err))
		return nil, &RetrievalError{Stage: "search", Err: err}
	}

	// The store's ordering is authoritative; rank follows it directly.
	docs := make([]Document, len(matches))
	for i, m := range matches {
		docs[i] = Document{
			Content: m.Content,
			Score:   m.Score,
			Rank:    i,
		}
	}
	return docs, nil
}
