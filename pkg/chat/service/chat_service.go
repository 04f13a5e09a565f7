package service

import (
	"context"
	"errors"

	"agrow/entities"
	"agrow/pkg/session"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

const (
	SourceScripted = "scripted"
	SourceLLM      = "llm"
)

type Reply struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

type ChatService interface {
	Send(ctx context.Context, s session.Session, message string) (Reply, error)
	History(ctx context.Context, uid string, limit int) ([]entities.ChatMessage, error)
}
