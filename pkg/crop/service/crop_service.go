package service

import (
	"context"
	"errors"

	"agrow/entities"
	"agrow/pkg/crop/repository"
)

var (
	ErrNotFound      = repository.ErrNotFound
	ErrInvalidStatus = errors.New("invalid status")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidField  = errors.New("invalid field")
)

// CropInput is the create body. Dates are YYYY-MM-DD.
type CropInput struct {
	Name                string  `json:"name"`
	Variety             string  `json:"variety"`
	AreaAcres           float64 `json:"area_acres"`
	PlantingDate        *string `json:"planting_date"`
	ExpectedHarvestDate *string `json:"expected_harvest_date"`
	Notes               string  `json:"notes"`
	Status              string  `json:"status"`
}

// CropPatch only touches the fields that are non-nil.
type CropPatch struct {
	Name                *string  `json:"name"`
	Variety             *string  `json:"variety"`
	AreaAcres           *float64 `json:"area_acres"`
	PlantingDate        *string  `json:"planting_date"`
	ExpectedHarvestDate *string  `json:"expected_harvest_date"`
	Notes               *string  `json:"notes"`
	Status              *string  `json:"status"`
}

type CropService interface {
	Create(ctx context.Context, uid string, in CropInput) (*entities.Crop, error)
	List(ctx context.Context, uid, status string) ([]entities.Crop, error)
	Get(ctx context.Context, uid, id string) (*entities.Crop, error)
	Update(ctx context.Context, uid, id string, p CropPatch) (*entities.Crop, error)
	Delete(ctx context.Context, uid, id string) error
}
