package service

import (
	"context"
	"errors"

	"agrow/entities"
	"agrow/pkg/task/repository"
)

var (
	ErrNotFound      = repository.ErrNotFound
	ErrInvalidStatus = errors.New("invalid status")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidField  = errors.New("invalid field")
)

type TaskInput struct {
	CropID      *string `json:"crop_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
}

type TaskPatch struct {
	CropID      *string `json:"crop_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

type TaskService interface {
	Create(ctx context.Context, uid string, in TaskInput) (*entities.Task, error)
	List(ctx context.Context, uid string, f repository.Filter) ([]entities.Task, error)
	Get(ctx context.Context, uid, id string) (*entities.Task, error)
	Update(ctx context.Context, uid, id string, p TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, uid, id string) error
}
