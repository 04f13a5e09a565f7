package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrow/entities"
	cropRepo "agrow/pkg/crop/repository"
	repo "agrow/pkg/task/repository"
	"agrow/pkg/task/service"
)

// CropFinder resolves a crop owned by uid.
type CropFinder interface {
	FindByID(ctx context.Context, id, uid string) (*entities.Crop, error)
}

type taskSvc struct {
	r     repo.TaskRepository
	crops CropFinder
}

// NewTaskService checks crop_id against crops when it is non-nil.
func NewTaskService(r repo.TaskRepository, crops CropFinder) service.TaskService {
	return &taskSvc{r: r, crops: crops}
}

func parseDue(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD or RFC3339", service.ErrInvalidField)
	}
	return &t, nil
}

func optionalID(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// checkCrop accepts an empty id or one of uid's own crops.
func (s *taskSvc) checkCrop(ctx context.Context, uid string, id *string) error {
	if id == nil || s.crops == nil {
		return nil
	}
	if _, err := s.crops.FindByID(ctx, *id, uid); err != nil {
		if errors.Is(err, cropRepo.ErrNotFound) {
			return fmt.Errorf("%w: crop_id %q is not one of your crops", service.ErrInvalidField, *id)
		}
		return fmt.Errorf("look up crop: %w", err)
	}
	return nil
}

func (s *taskSvc) Create(ctx context.Context, uid string, in service.TaskInput) (*entities.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title", service.ErrMissingField)
	}
	if in.Status != "" && !entities.ValidTaskStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, in.Status)
	}
	if in.Priority != "" && !entities.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("%w: priority must be low, medium or high", service.ErrInvalidField)
	}
	due, err := parseDue(in.DueDate)
	if err != nil {
		return nil, err
	}
	cropID := optionalID(in.CropID)
	if err := s.checkCrop(ctx, uid, cropID); err != nil {
		return nil, err
	}
	t := &entities.Task{
		UserID:      uid,
		CropID:      cropID,
		Title:       title,
		Description: in.Description,
		DueDate:     due,
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *taskSvc) List(ctx context.Context, uid string, f repo.Filter) ([]entities.Task, error) {
	if f.Status != "" && !entities.ValidTaskStatus(f.Status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, f.Status)
	}
	return s.r.List(ctx, uid, f)
}

func (s *taskSvc) Get(ctx context.Context, uid, id string) (*entities.Task, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *taskSvc) Update(ctx context.Context, uid, id string, p service.TaskPatch) (*entities.Task, error) {
	if p.Status != nil && !entities.ValidTaskStatus(*p.Status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !entities.ValidPriority(*p.Priority) {
		return nil, fmt.Errorf("%w: priority must be low, medium or high", service.ErrInvalidField)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, fmt.Errorf("%w: title", service.ErrMissingField)
	}
	due, err := parseDue(p.DueDate)
	if err != nil {
		return nil, err
	}

	cur, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if p.CropID != nil {
		cropID := optionalID(p.CropID)
		if err := s.checkCrop(ctx, uid, cropID); err != nil {
			return nil, err
		}
		cur.CropID = cropID
	}
	if p.Title != nil {
		cur.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		cur.Description = *p.Description
	}
	if p.DueDate != nil {
		cur.DueDate = due
	}
	if p.Priority != nil {
		cur.Priority = *p.Priority
	}
	if p.Status != nil {
		cur.Status = *p.Status
	}
	if err := s.r.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return cur, nil
}

func (s *taskSvc) Delete(ctx context.Context, uid, id string) error {
	return s.r.Delete(ctx, id, uid)
}
