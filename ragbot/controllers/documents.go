// ragbot/controllers/documents.go
package controllers

import (
	"context"
	"errors"

	"ragbot/ragbot/services/ingest"
	"ragbot/ragbot/types"
)

var ErrNoDocuments = errors.New("documents must not be empty")

type DocumentsController struct {
	indexer *ingest.Indexer
}

func NewDocumentsController(indexer *ingest.Indexer) *DocumentsController {
	return &DocumentsController{indexer: indexer}
}

// Index embeds and stores the request's documents.
func (c *DocumentsController) Index(ctx context.Context, req types.IndexRequest) (*types.IndexResponse, error) {
	if len(req.Documents) == 0 {
		return nil, ErrNoDocuments
	}
	n, err := c.indexer.Index(ctx, req.Documents)
	if err != nil {
		return nil, err
	}
	return &types.IndexResponse{Indexed: n}, nil
}
