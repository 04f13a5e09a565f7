package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agrow/entities"
	repo "agrow/pkg/crop/repository"
	"agrow/pkg/crop/service"
)

type cropSvc struct{ r repo.CropRepository }

func NewCropService(r repo.CropRepository) service.CropService { return &cropSvc{r} }

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", service.ErrInvalidField, field)
	}
	return &t, nil
}

func (s *cropSvc) Create(ctx context.Context, uid string, in service.CropInput) (*entities.Crop, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", service.ErrMissingField)
	}
	if in.AreaAcres < 0 {
		return nil, fmt.Errorf("%w: area_acres must not be negative", service.ErrInvalidField)
	}
	if in.Status != "" && !entities.ValidCropStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, in.Status)
	}
	pd, err := parseDate("planting_date", in.PlantingDate)
	if err != nil {
		return nil, err
	}
	hd, err := parseDate("expected_harvest_date", in.ExpectedHarvestDate)
	if err != nil {
		return nil, err
	}
	c := &entities.Crop{
		UserID:              uid,
		Name:                name,
		Variety:             strings.TrimSpace(in.Variety),
		AreaAcres:           in.AreaAcres,
		PlantingDate:        pd,
		ExpectedHarvestDate: hd,
		Notes:               in.Notes,
		Status:              in.Status,
	}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create crop: %w", err)
	}
	return c, nil
}

func (s *cropSvc) List(ctx context.Context, uid, status string) ([]entities.Crop, error) {
	if status != "" && !entities.ValidCropStatus(status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, status)
	}
	return s.r.List(ctx, uid, status)
}

func (s *cropSvc) Get(ctx context.Context, uid, id string) (*entities.Crop, error) {
	return s.r.FindByID(ctx, id, uid)
}

// Update validates the whole patch before touching the row.
func (s *cropSvc) Update(ctx context.Context, uid, id string, p service.CropPatch) (*entities.Crop, error) {
	if p.Status != nil && !entities.ValidCropStatus(*p.Status) {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, *p.Status)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: name", service.ErrMissingField)
	}
	if p.AreaAcres != nil && *p.AreaAcres < 0 {
		return nil, fmt.Errorf("%w: area_acres must not be negative", service.ErrInvalidField)
	}
	pd, err := parseDate("planting_date", p.PlantingDate)
	if err != nil {
		return nil, err
	}
	hd, err := parseDate("expected_harvest_date", p.ExpectedHarvestDate)
	if err != nil {
		return nil, err
	}

	cur, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.Variety != nil {
		cur.Variety = *p.Variety
	}
	if p.AreaAcres != nil {
		cur.AreaAcres = *p.AreaAcres
	}
	if p.PlantingDate != nil {
		cur.PlantingDate = pd
	}
	if p.ExpectedHarvestDate != nil {
		cur.ExpectedHarvestDate = hd
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	if p.Status != nil {
		cur.Status = *p.Status
	}
	if err := s.r.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("update crop: %w", err)
	}
	return cur, nil
}

func (s *cropSvc) Delete(ctx context.Context, uid, id string) error {
	return s.r.Delete(ctx, id, uid)
}
