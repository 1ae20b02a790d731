package movies

import (
	"time"

	"theatre/internal/screens"

	"github.com/google/uuid"
)

// Movie is a showing on a screen. Price is the base per-seat price; seat
// type modifiers are applied on top by the seat catalog.
type Movie struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Language    string    `json:"language,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PosterURL   string    `json:"poster_url,omitempty"`
	ScreenID    uuid.UUID `gorm:"type:uuid;index;not null" json:"screen_id"`
	Price       float64   `gorm:"not null" json:"price"`
	ShowTime    time.Time `json:"show_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Screen *screens.Screen `json:"screen,omitempty" gorm:"foreignKey:ScreenID"`
}

// TableName sets the table name for Movie
func (Movie) TableName() string {
	return "movies"
}
