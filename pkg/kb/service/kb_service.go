package service

import (
	"context"
	"errors"

	"agrow/entities"
)

var ErrMissingField = errors.New("missing required field")

// Hit is one matching chunk with its document's title and URL.
type Hit struct {
	ChunkID   uint    `json:"chunk_id"`
	DocID     uint    `json:"doc_id"`
	Ord       int     `json:"ord"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	DocTitle  string  `json:"doc_title,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
}

type KBService interface {
	UpsertDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(ctx context.Context, query string, k int) ([]Hit, error)
	// Titles returns up to k distinct titles of documents matching query.
	Titles(ctx context.Context, query string, k int) ([]string, error)
	ListDocs(ctx context.Context) ([]entities.KBDocument, error)
}
