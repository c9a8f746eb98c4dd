package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

// LoadLayout reads the grid geometry from a YAML file. Keys missing from
// the file keep their default values. An empty path returns the defaults.
func LoadLayout(path string) (reservation.Layout, error) {
	layout := reservation.DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("read layout file: %w", err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("parse layout file: %w", err)
	}

	if layout.RowHeight <= 0 {
		return layout, fmt.Errorf("row_height must be positive, got %v", layout.RowHeight)
	}
	if layout.CheckInHour < 0 || layout.CheckInHour > 23 || layout.CheckOutHour < 0 || layout.CheckOutHour > 23 {
		return layout, fmt.Errorf("check-in and check-out hours must be between 0 and 23")
	}
	return layout, nil
}
