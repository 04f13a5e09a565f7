package repository

import (
	"context"

	"agrow/entities"
)

type ChatRepository interface {
	Create(ctx context.Context, m *entities.ChatMessage) error
	// Recent returns the user's last limit messages, oldest first.
	Recent(ctx context.Context, uid string, limit int) ([]entities.ChatMessage, error)
}
