package movies

import (
	"context"
	"errors"

	"theatre/internal/screens"
	"theatre/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByIDWithScreen(ctx context.Context, id uuid.UUID) (*Movie, error)
	MovieForSeatMap(ctx context.Context, movieID uuid.UUID) (*screens.MovieRef, error)
	List(ctx context.Context) ([]Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByIDWithScreen(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).
		Preload("Screen").
		Where("id = ?", id).
		First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("movie")
		}
		return nil, err
	}
	if movie.Screen == nil {
		return nil, apperrors.NewNotFound("screen")
	}
	return &movie, nil
}

// MovieForSeatMap satisfies screens.MovieSource.
func (r *repository) MovieForSeatMap(ctx context.Context, movieID uuid.UUID) (*screens.MovieRef, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", movieID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("movie")
		}
		return nil, err
	}

	return &screens.MovieRef{
		ID:        movie.ID,
		Title:     movie.Title,
		ScreenID:  movie.ScreenID,
		BasePrice: movie.Price,
	}, nil
}

func (r *repository) List(ctx context.Context) ([]Movie, error) {
	var list []Movie
	err := r.db.WithContext(ctx).
		Preload("Screen").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Movie{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("movie")
	}
	return nil
}
