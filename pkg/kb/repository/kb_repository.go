package repository

import (
	"context"

	"agrow/entities"
)

type KBRepository interface {
	// CreateDoc stores the document and its chunks in one transaction.
	CreateDoc(ctx context.Context, d *entities.KBDocument, chunks []entities.KBChunk) error
	ListDocs(ctx context.Context) ([]entities.KBDocument, error)
	AllChunks(ctx context.Context) ([]entities.KBChunk, error)
}
