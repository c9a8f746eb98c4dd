package reservation

// Layout holds the fixed row geometry and default stay times.
type Layout struct {
	// RowHeight is the height of a reservation block and the distance
	// between two adjacent rows.
	RowHeight float64 `yaml:"row_height"`
	// TopInset is the offset of a block from the top of its row.
	TopInset float64 `yaml:"top_inset"`
	// MinSelectionWidth is the drag distance above which an area
	// selection creates a reservation instead of counting as a click.
	MinSelectionWidth float64 `yaml:"min_selection_width"`
	CheckInHour       int     `yaml:"check_in_hour"`
	CheckOutHour      int     `yaml:"check_out_hour"`
}

// DefaultLayout returns the stock grid layout.
func DefaultLayout() Layout {
	return Layout{
		RowHeight:         34,
		TopInset:          5,
		MinSelectionWidth: 10,
		CheckInHour:       14,
		CheckOutHour:      11,
	}
}
