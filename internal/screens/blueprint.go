package screens

// DefaultBlueprints describes the stock screens seeded on first start.
// Dimensions and designations mirror the theatre's physical layout: top rows
// have the preferred sightline, back rows trade sightline for price, the
// premium tail rows get recliners, and wheelchair positions sit on the
// accessible aisle.
func DefaultBlueprints(modifiers PriceModifiers) []Blueprint {
	return []Blueprint{
		{
			Name:          "Screen 1",
			Code:          "screen1",
			Rows:          10,
			Columns:       40,
			PreferredRows: []string{"A", "B"},
			ValueRows:     []string{"F", "G", "H", "I", "J"},
			PremiumRows:   []string{"I", "J"},
			WheelchairSeats: []WheelchairSeat{
				{Row: "D", Column: 20},
				{Row: "D", Column: 21},
			},
			Modifiers: modifiers,
		},
		{
			Name:          "Screen 2",
			Code:          "screen2",
			Rows:          10,
			Columns:       30,
			PreferredRows: []string{"A", "B"},
			ValueRows:     []string{"F", "G", "H", "I", "J"},
			PremiumRows:   []string{"H", "I", "J"},
			WheelchairSeats: []WheelchairSeat{
				{Row: "D", Column: 15},
				{Row: "D", Column: 16},
			},
			Modifiers: modifiers,
		},
		{
			Name:          "Screen 3",
			Code:          "screen3",
			Rows:          10,
			Columns:       20,
			PreferredRows: []string{"A", "B"},
			ValueRows:     []string{"F", "G", "H", "I", "J"},
			PremiumRows:   []string{"G", "H", "I", "J"},
			WheelchairSeats: []WheelchairSeat{
				{Row: "D", Column: 10},
				{Row: "D", Column: 11},
			},
			Modifiers: modifiers,
		},
		{
			Name:          "Screen 4 (Premium)",
			Code:          "screen4",
			Rows:          10,
			Columns:       10,
			PreferredRows: []string{"A", "B", "C", "D"},
			ValueRows:     []string{},
			PremiumRows:   []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
			WheelchairSeats: []WheelchairSeat{
				{Row: "E", Column: 5},
				{Row: "E", Column: 6},
			},
			Modifiers: modifiers,
		},
	}
}
