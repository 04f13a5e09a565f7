package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrow/entities"
	"agrow/pkg/kb/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KBRepository { return &repo{db} }

func (r *repo) CreateDoc(ctx context.Context, d *entities.KBDocument, chunks []entities.KBChunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		for i := range chunks {
			chunks[i].DocID = d.DocID
		}
		return tx.Create(&chunks).Error
	})
}

func (r *repo) ListDocs(ctx context.Context) ([]entities.KBDocument, error) {
	ds := []entities.KBDocument{}
	return ds, r.db.WithContext(ctx).Order("doc_id DESC").Find(&ds).Error
}

func (r *repo) AllChunks(ctx context.Context) ([]entities.KBChunk, error) {
	var cs []entities.KBChunk
	return cs, r.db.WithContext(ctx).Order("doc_id, ord").Find(&cs).Error
}
