package room

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "room not found")
	ErrCategoryNotFound = apperror.New(http.StatusNotFound, "room category not found")
	ErrEmptyNumber      = apperror.New(http.StatusBadRequest, "room number cannot be empty")
	ErrDuplicateNumber  = apperror.New(http.StatusConflict, "room number already exists")
)

// Category groups rooms of the same type (e.g., Standard, Suite).
type Category struct {
	ID        string
	Name      string
	Position  int
	CreatedAt time.Time
}

// Room is one row of the timeline.
type Room struct {
	ID           string
	Number       string
	Name         string
	CategoryID   string
	CategoryName string
	// Features are status tags such as "Smoking", "Clean" or "Work Order".
	Features  []string
	Position  int
	CreatedAt time.Time
}

// Label is the text shown for the room: its name, or its number.
func (r *Room) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Number
}

// HasFeature reports whether the room carries the tag, ignoring case.
func (r *Room) HasFeature(tag string) bool {
	for _, f := range r.Features {
		if strings.EqualFold(f, tag) {
			return true
		}
	}
	return false
}

// Filter narrows the room list. Empty fields match everything.
type Filter struct {
	Query      string // substring of name or number
	CategoryID string
	Feature    string
	Floor      string // leading digits of the room number
}

// Matches applies the filter to a single room.
func (f Filter) Matches(r *Room) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(r.Label()), strings.ToLower(q)) {
			return false
		}
	}
	if f.CategoryID != "" && r.CategoryID != f.CategoryID {
		return false
	}
	if f.Feature != "" && !r.HasFeature(f.Feature) {
		return false
	}
	if f.Floor != "" && !strings.HasPrefix(r.Number, f.Floor) {
		return false
	}
	return true
}

// cacheKey identifies the filter inside the room cache.
func (f Filter) cacheKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(f.Query)), f.CategoryID, strings.ToLower(f.Feature), f.Floor,
	}, "|")
}
