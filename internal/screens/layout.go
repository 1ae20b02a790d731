package screens

import (
	"fmt"

	"theatre/internal/shared/apperrors"
)

const rowAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateLayout produces the ordered seat list for a blueprint. It is a
// pure function: the same blueprint always yields the same seats, row by row,
// column by column. Seat ids are the row letter followed by the zero-padded
// two-digit column number ("A01").
//
// When designations overlap on one seat, precedence is
// wheelchair > premium > preferred > value > standard.
func GenerateLayout(bp Blueprint) ([]Seat, error) {
	if bp.Rows <= 0 || bp.Columns <= 0 {
		return nil, apperrors.NewValidation("seat layout requires positive row and column counts")
	}

	if bp.Rows > len(rowAlphabet) {
		return nil, apperrors.NewValidation(fmt.Sprintf("seat generation supports up to %d rows (A-Z)", len(rowAlphabet)))
	}

	preferred := toRowSet(bp.PreferredRows)
	value := toRowSet(bp.ValueRows)
	premium := toRowSet(bp.PremiumRows)

	layout := make([]Seat, 0, bp.Rows*bp.Columns)

	for rowIndex := 0; rowIndex < bp.Rows; rowIndex++ {
		rowLabel := string(rowAlphabet[rowIndex])

		for column := 1; column <= bp.Columns; column++ {
			seatType := SeatTypeStandard
			switch {
			case isWheelchairSeat(bp.WheelchairSeats, rowLabel, column):
				seatType = SeatTypeWheelchair
			case premium[rowLabel]:
				seatType = SeatTypePremium
			case preferred[rowLabel]:
				seatType = SeatTypePreferred
			case value[rowLabel]:
				seatType = SeatTypeValue
			}

			layout = append(layout, Seat{
				SeatID:        fmt.Sprintf("%s%02d", rowLabel, column),
				Row:           rowLabel,
				Column:        column,
				Type:          seatType,
				PriceModifier: bp.Modifiers.forType(seatType),
			})
		}
	}

	return layout, nil
}

func (m PriceModifiers) forType(t SeatType) float64 {
	switch t {
	case SeatTypePreferred:
		return m.Preferred
	case SeatTypeValue:
		return m.Value
	case SeatTypePremium:
		return m.Premium
	case SeatTypeWheelchair:
		return m.Wheelchair
	default:
		return 0
	}
}

func toRowSet(rows []string) map[string]bool {
	set := make(map[string]bool, len(rows))
	for _, row := range rows {
		set[row] = true
	}
	return set
}

func isWheelchairSeat(seats []WheelchairSeat, row string, column int) bool {
	for _, ws := range seats {
		if ws.Row == row && ws.Column == column {
			return true
		}
	}
	return false
}
