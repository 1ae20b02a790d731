package screens

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SeatType classifies a seat's sightline/accessibility category.
type SeatType string

const (
	SeatTypeStandard   SeatType = "standard"
	SeatTypePreferred  SeatType = "preferred"
	SeatTypeValue      SeatType = "value"
	SeatTypePremium    SeatType = "premium"
	SeatTypeWheelchair SeatType = "wheelchair"
)

// IsValid checks if the seat type is a known category
func (t SeatType) IsValid() bool {
	switch t {
	case SeatTypeStandard, SeatTypePreferred, SeatTypeValue, SeatTypePremium, SeatTypeWheelchair:
		return true
	}
	return false
}

func (t SeatType) String() string {
	return string(t)
}

// Screen persists a screen's blueprint. The seat list itself is never
// stored: it is regenerated deterministically from these fields.
type Screen struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string          `gorm:"uniqueIndex;not null" json:"name"`
	Code            string          `gorm:"uniqueIndex;not null" json:"code"`
	Rows            int             `gorm:"not null" json:"rows"`
	Columns         int             `gorm:"not null" json:"columns"`
	TotalSeats      int             `gorm:"not null" json:"total_seats"`
	PreferredRows   pq.StringArray  `gorm:"type:text[]" json:"preferred_rows"`
	ValueRows       pq.StringArray  `gorm:"type:text[]" json:"value_rows"`
	PremiumRows     pq.StringArray  `gorm:"type:text[]" json:"premium_rows"`
	WheelchairSeats WheelchairSeats `gorm:"type:jsonb;serializer:json" json:"wheelchair_seats"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName sets the table name for Screen
func (Screen) TableName() string {
	return "screens"
}

// WheelchairSeat designates one wheelchair-accessible position.
type WheelchairSeat struct {
	Row    string `json:"row"`
	Column int    `json:"column"`
}

type WheelchairSeats []WheelchairSeat

// Seat is one generated seat of a screen's layout. Seats are derived values,
// not rows in the database.
type Seat struct {
	SeatID        string   `json:"seat_id"`
	Row           string   `json:"row"`
	Column        int      `json:"column"`
	Type          SeatType `json:"type"`
	PriceModifier float64  `json:"price_modifier"`
}

// Blueprint is the input to layout generation: dimensions plus row/seat
// designations and the configured per-type price modifiers.
type Blueprint struct {
	Name            string
	Code            string
	Rows            int
	Columns         int
	PreferredRows   []string
	ValueRows       []string
	PremiumRows     []string
	WheelchairSeats []WheelchairSeat
	Modifiers       PriceModifiers
}

// PriceModifiers holds the per-type price adjustments. These are
// configuration values, not constants baked into the generator.
type PriceModifiers struct {
	Preferred  float64
	Value      float64
	Premium    float64
	Wheelchair float64
}

// DefaultPriceModifiers returns the stock modifier set.
func DefaultPriceModifiers() PriceModifiers {
	return PriceModifiers{
		Preferred:  1,
		Value:      -2,
		Premium:    2,
		Wheelchair: 0,
	}
}

// Blueprint reconstructs the generation input from a persisted screen.
func (s *Screen) Blueprint(modifiers PriceModifiers) Blueprint {
	return Blueprint{
		Name:            s.Name,
		Code:            s.Code,
		Rows:            s.Rows,
		Columns:         s.Columns,
		PreferredRows:   s.PreferredRows,
		ValueRows:       s.ValueRows,
		PremiumRows:     s.PremiumRows,
		WheelchairSeats: s.WheelchairSeats,
		Modifiers:       modifiers,
	}
}
