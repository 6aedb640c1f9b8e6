// Package vectorstore defines a technology-agnostic interface for vector
// similarity search. Implementations can use Qdrant, an in-memory index, or
// any other backend that returns ranked results.
package vectorstore

import "context"

// Store persists and queries document embeddings.
type Store interface {
	// Search returns up to limit results ranked by the backend's own
	// ordering. An empty collection yields an empty slice, not an error.
	Search(ctx context.Context, vector []float32, limit int) ([]SearchResult, error)

	// Upsert writes points into the collection.
	Upsert(ctx context.Context, points []Point) error

	// Close releases any resources held by the store.
	Close() error
}

// Point is a document embedding to store.
type Point struct {
	ID      string
	Vector  []float32
	Content string
}

// SearchResult is a single similarity match.
type SearchResult struct {
	// ID is the unique identifier of the stored point.
	ID string

	// Score is the similarity of the match. Higher is more similar
	// (cosine similarity convention, matching Qdrant).
	Score float32

	// Content is the text associated with this vector.
	Content string
}
