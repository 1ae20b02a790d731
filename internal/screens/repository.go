package screens

import (
	"context"
	"errors"

	"theatre/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Screen, error)
	GetByCode(ctx context.Context, code string) (*Screen, error)
	ListCodes(ctx context.Context) ([]string, error)
	Create(ctx context.Context, screen *Screen) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	var screen Screen
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&screen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("screen")
		}
		return nil, err
	}
	return &screen, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Screen, error) {
	var screen Screen
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&screen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("screen")
		}
		return nil, err
	}
	return &screen, nil
}

func (r *repository) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Model(&Screen{}).Pluck("code", &codes).Error
	return codes, err
}

func (r *repository) Create(ctx context.Context, screen *Screen) error {
	return r.db.WithContext(ctx).Create(screen).Error
}
