package movies

import (
	"context"
	"strings"
	"time"

	"theatre/internal/screens"
	"theatre/internal/shared/apperrors"

	"github.com/google/uuid"
)

// ScreenResolver resolves the screen a new movie is assigned to.
type ScreenResolver interface {
	GetByCode(ctx context.Context, code string) (*screens.Screen, error)
}

// CreateMovieRequest is the admin payload for adding a movie. The screen is
// referenced by its stable code, not its id.
type CreateMovieRequest struct {
	Title       string  `json:"title" binding:"required"`
	Language    string  `json:"language"`
	Genre       string  `json:"genre"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	PosterURL   string  `json:"poster_url"`
	ScreenCode  string  `json:"screen_code" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ShowTime    string  `json:"show_time"`
}

// Service interface defines the contract for movie catalog operations
type Service interface {
	List(ctx context.Context) ([]Movie, error)
	Create(ctx context.Context, req CreateMovieRequest) (*Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	screens ScreenResolver
}

// NewService creates a new movie catalog service instance
func NewService(repo Repository, screenResolver ScreenResolver) Service {
	return &service{
		repo:    repo,
		screens: screenResolver,
	}
}

func (s *service) List(ctx context.Context) ([]Movie, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	screen, err := s.screens.GetByCode(ctx, strings.ToLower(strings.TrimSpace(req.ScreenCode)))
	if err != nil {
		return nil, err
	}

	showTime := time.Time{}
	if req.ShowTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.ShowTime)
		if err != nil {
			return nil, apperrors.NewValidation("show_time must be RFC3339")
		}
		showTime = parsed.UTC()
	}

	movie := &Movie{
		Title:       strings.TrimSpace(req.Title),
		Language:    req.Language,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		ScreenID:    screen.ID,
		Price:       req.Price,
		ShowTime:    showTime,
	}
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	movie.Screen = screen
	return movie, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
