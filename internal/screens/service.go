package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/config"
	"theatre/pkg/cache"
	"theatre/pkg/logger"

	"github.com/google/uuid"
)

// MovieRef is the slice of a movie the seat catalog needs: identity, the
// screen it plays on, and the base per-seat price.
type MovieRef struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ScreenID  uuid.UUID `json:"screen_id"`
	BasePrice float64   `json:"base_price"`
}

// MovieSource resolves movies for seat-map queries (implemented by the
// movies repository; declared here to avoid a circular dependency).
type MovieSource interface {
	MovieForSeatMap(ctx context.Context, movieID uuid.UUID) (*MovieRef, error)
}

// ClaimSource lists the seat ids currently claimed for a movie (implemented
// by the bookings repository).
type ClaimSource interface {
	ClaimedSeatIDs(ctx context.Context, movieID uuid.UUID) ([]string, error)
}

// SeatMapResponse is the seat-map query result. Claimed seats are a snapshot:
// only the reservation transaction is authoritative.
type SeatMapResponse struct {
	MovieID      string     `json:"movie_id"`
	MovieTitle   string     `json:"movie_title"`
	BasePrice    float64    `json:"base_price"`
	Screen       ScreenInfo `json:"screen"`
	Seats        []SeatView `json:"seats"`
	ClaimedSeats []string   `json:"claimed_seats"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

// ScreenInfo identifies the screen a seat map belongs to.
type ScreenInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	TotalSeats int    `json:"total_seats"`
}

// SeatView is one seat of the map with its resolved price.
type SeatView struct {
	SeatID        string   `json:"seat_id"`
	Row           string   `json:"row"`
	Column        int      `json:"column"`
	Type          SeatType `json:"type"`
	PriceModifier float64  `json:"price_modifier"`
	Price         float64  `json:"price"`
}

// Service interface defines the contract for seat catalog operations
type Service interface {
	GetSeatMap(ctx context.Context, movieID uuid.UUID) (*SeatMapResponse, error)
	Layout(screen *Screen) ([]Seat, error)
	PriceSeats(screen *Screen, basePrice float64, seatIDs []string) (float64, error)
	InvalidateSeatMap(ctx context.Context, movieID uuid.UUID)
	EnsureDefaults(ctx context.Context) error
}

type service struct {
	repo      Repository
	movies    MovieSource
	claims    ClaimSource
	cache     cache.Service
	modifiers PriceModifiers
	ttl       time.Duration
	log       *logger.Logger
}

// NewService creates a new seat catalog service instance
func NewService(repo Repository, movies MovieSource, claims ClaimSource, cacheSvc cache.Service, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		movies: movies,
		claims: claims,
		cache:  cacheSvc,
		modifiers: PriceModifiers{
			Preferred:  cfg.Catalog.PreferredModifier,
			Value:      cfg.Catalog.ValueModifier,
			Premium:    cfg.Catalog.PremiumModifier,
			Wheelchair: cfg.Catalog.WheelchairModifier,
		},
		ttl: cfg.Redis.SeatMapTTL,
		log: logger.GetDefault(),
	}
}

// Layout generates the ordered seat list for a screen using the configured
// price modifiers.
func (s *service) Layout(screen *Screen) ([]Seat, error) {
	return GenerateLayout(screen.Blueprint(s.modifiers))
}

// PriceSeats validates the requested seat ids against the screen's layout
// and returns their total price. Unknown ids fail with a ValidationError
// naming every invalid seat.
func (s *service) PriceSeats(screen *Screen, basePrice float64, seatIDs []string) (float64, error) {
	layout, err := s.Layout(screen)
	if err != nil {
		return 0, err
	}

	byID := make(map[string]Seat, len(layout))
	for _, seat := range layout {
		byID[seat.SeatID] = seat
	}

	var total float64
	var invalid []string
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		total += basePrice + seat.PriceModifier
	}
	if len(invalid) > 0 {
		return 0, &apperrors.ValidationError{
			Message:      "invalid seat selection for this screen",
			InvalidSeats: invalid,
		}
	}

	return total, nil
}

// GetSeatMap assembles the full seat map for a movie plus the snapshot of
// claimed seats, serving from cache when fresh.
func (s *service) GetSeatMap(ctx context.Context, movieID uuid.UUID) (*SeatMapResponse, error) {
	key := seatMapCacheKey(movieID)

	if s.cache != nil {
		var cached SeatMapResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("seat map cache read failed", slog.Any("error", err))
		}
	}

	movie, err := s.movies.MovieForSeatMap(ctx, movieID)
	if err != nil {
		return nil, err
	}

	screen, err := s.repo.GetByID(ctx, movie.ScreenID)
	if err != nil {
		return nil, err
	}

	layout, err := s.Layout(screen)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claims.ClaimedSeatIDs(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		claimed = []string{}
	}

	seats := make([]SeatView, 0, len(layout))
	for _, seat := range layout {
		seats = append(seats, SeatView{
			SeatID:        seat.SeatID,
			Row:           seat.Row,
			Column:        seat.Column,
			Type:          seat.Type,
			PriceModifier: seat.PriceModifier,
			Price:         movie.BasePrice + seat.PriceModifier,
		})
	}

	resp := &SeatMapResponse{
		MovieID:    movie.ID.String(),
		MovieTitle: movie.Title,
		BasePrice:  movie.BasePrice,
		Screen: ScreenInfo{
			ID:         screen.ID.String(),
			Name:       screen.Name,
			Code:       screen.Code,
			Rows:       screen.Rows,
			Columns:    screen.Columns,
			TotalSeats: screen.TotalSeats,
		},
		Seats:        seats,
		ClaimedSeats: claimed,
		GeneratedAt:  time.Now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
			s.log.Warn("seat map cache write failed", slog.Any("error", err))
		}
	}

	return resp, nil
}

// InvalidateSeatMap drops the cached snapshot after a claim-affecting write.
// Best effort: a stale snapshot only costs the client a retry.
func (s *service) InvalidateSeatMap(ctx context.Context, movieID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, seatMapCacheKey(movieID)); err != nil {
		s.log.Warn("seat map cache invalidation failed", slog.Any("error", err))
	}
}

// EnsureDefaults seeds the stock screens that are not present yet.
func (s *service) EnsureDefaults(ctx context.Context) error {
	existing, err := s.repo.ListCodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list screen codes: %w", err)
	}

	existingCodes := make(map[string]bool, len(existing))
	for _, code := range existing {
		existingCodes[code] = true
	}

	for _, bp := range DefaultBlueprints(s.modifiers) {
		if existingCodes[bp.Code] {
			continue
		}

		// Reject blueprints the generator cannot realize before persisting.
		if _, err := GenerateLayout(bp); err != nil {
			return fmt.Errorf("invalid default blueprint %s: %w", bp.Code, err)
		}

		screen := &Screen{
			Name:            bp.Name,
			Code:            bp.Code,
			Rows:            bp.Rows,
			Columns:         bp.Columns,
			TotalSeats:      bp.Rows * bp.Columns,
			PreferredRows:   bp.PreferredRows,
			ValueRows:       bp.ValueRows,
			PremiumRows:     bp.PremiumRows,
			WheelchairSeats: bp.WheelchairSeats,
		}

		if err := s.repo.Create(ctx, screen); err != nil {
			return fmt.Errorf("failed to seed screen %s: %w", bp.Code, err)
		}

		s.log.Info("seeded default screen", slog.String("code", bp.Code), slog.Int("seats", screen.TotalSeats))
	}

	return nil
}

func seatMapCacheKey(movieID uuid.UUID) string {
	return "theatre:seatmap:" + movieID.String()
}
