package screens

import (
	"testing"

	"theatre/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLayoutSeatOrder(t *testing.T) {
	layout, err := GenerateLayout(Blueprint{
		Rows:      2,
		Columns:   3,
		Modifiers: DefaultPriceModifiers(),
	})
	require.NoError(t, err)
	require.Len(t, layout, 6)

	ids := make([]string, 0, len(layout))
	for _, seat := range layout {
		ids = append(ids, seat.SeatID)
	}
	assert.Equal(t, []string{"A01", "A02", "A03", "B01", "B02", "B03"}, ids)

	assert.Equal(t, "B", layout[5].Row)
	assert.Equal(t, 3, layout[5].Column)
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	bp := Blueprint{
		Rows:          4,
		Columns:       5,
		PreferredRows: []string{"A"},
		ValueRows:     []string{"D"},
		Modifiers:     DefaultPriceModifiers(),
	}

	first, err := GenerateLayout(bp)
	require.NoError(t, err)
	second, err := GenerateLayout(bp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateLayoutTypePrecedence(t *testing.T) {
	bp := Blueprint{
		Rows:          3,
		Columns:       2,
		PreferredRows: []string{"A", "B"},
		ValueRows:     []string{"B"},
		PremiumRows:   []string{"B", "C"},
		WheelchairSeats: []WheelchairSeat{
			{Row: "C", Column: 1},
		},
		Modifiers: DefaultPriceModifiers(),
	}

	layout, err := GenerateLayout(bp)
	require.NoError(t, err)

	byID := make(map[string]Seat, len(layout))
	for _, seat := range layout {
		byID[seat.SeatID] = seat
	}

	assert.Equal(t, SeatTypePreferred, byID["A01"].Type)
	// Premium beats both preferred and value on the same row.
	assert.Equal(t, SeatTypePremium, byID["B01"].Type)
	// Wheelchair beats everything, including premium.
	assert.Equal(t, SeatTypeWheelchair, byID["C01"].Type)
	assert.Equal(t, SeatTypePremium, byID["C02"].Type)
}

func TestGenerateLayoutModifiers(t *testing.T) {
	bp := Blueprint{
		Rows:          2,
		Columns:       1,
		ValueRows:     []string{"B"},
		PreferredRows: []string{"A"},
		Modifiers: PriceModifiers{
			Preferred: 1.5,
			Value:     -2,
		},
	}

	layout, err := GenerateLayout(bp)
	require.NoError(t, err)

	assert.Equal(t, 1.5, layout[0].PriceModifier)
	assert.Equal(t, -2.0, layout[1].PriceModifier)
}

func TestGenerateLayoutRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
	}{
		{"zero rows", 0, 10},
		{"zero columns", 10, 0},
		{"negative rows", -1, 10},
		{"too many rows", 27, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateLayout(Blueprint{Rows: tt.rows, Columns: tt.columns})
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDefaultBlueprintsGenerate(t *testing.T) {
	blueprints := DefaultBlueprints(DefaultPriceModifiers())
	require.NotEmpty(t, blueprints)

	for _, bp := range blueprints {
		layout, err := GenerateLayout(bp)
		require.NoError(t, err, "blueprint %s must generate", bp.Code)
		assert.Len(t, layout, bp.Rows*bp.Columns)

		wheelchairs := 0
		for _, seat := range layout {
			if seat.Type == SeatTypeWheelchair {
				wheelchairs++
			}
		}
		assert.Equal(t, len(bp.WheelchairSeats), wheelchairs, "blueprint %s wheelchair count", bp.Code)
	}
}
