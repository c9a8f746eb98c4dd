package room

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryRepository serves the catalog when no database is configured.
type memoryRepository struct {
	mu         sync.RWMutex
	categories []*Category
	rooms      []*Room
	nextID     int
}

// NewMemoryRepository returns a Repository holding the given catalog in memory.
func NewMemoryRepository(categories []*Category, rooms []*Room) Repository {
	r := &memoryRepository{nextID: 1}
	for _, c := range categories {
		cp := *c
		r.categories = append(r.categories, &cp)
	}
	for _, rm := range rooms {
		cp := *rm
		cp.Features = append([]string(nil), rm.Features...)
		if c := r.category(cp.CategoryID); c != nil {
			cp.CategoryName = c.Name
		}
		r.rooms = append(r.rooms, &cp)
	}
	return r
}

func (r *memoryRepository) category(id string) *Category {
	for _, c := range r.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *memoryRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		result = append(result, &cp)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (r *memoryRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.category(id)
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepository) ListRooms(ctx context.Context, filter Filter) ([]*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Room
	for _, rm := range r.rooms {
		if !filter.Matches(rm) {
			continue
		}
		cp := *rm
		result = append(result, &cp)
	}

	catPos := make(map[string]int, len(r.categories))
	for _, c := range r.categories {
		catPos[c.ID] = c.Position
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if catPos[a.CategoryID] != catPos[b.CategoryID] {
			return catPos[a.CategoryID] < catPos[b.CategoryID]
		}
		return a.Position < b.Position
	})
	return result, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rm := range r.rooms {
		if rm.ID == id {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Create(ctx context.Context, rm *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.category(rm.CategoryID)
	if c == nil {
		return ErrCategoryNotFound
	}
	for _, existing := range r.rooms {
		if existing.Number == rm.Number || existing.ID == rm.Number {
			return ErrDuplicateNumber
		}
	}

	rm.ID = rm.Number
	if rm.ID == "" {
		rm.ID = "room-" + strconv.Itoa(r.nextID)
		r.nextID++
	}
	rm.CategoryName = c.Name
	rm.CreatedAt = time.Now()

	cp := *rm
	r.rooms = append(r.rooms, &cp)
	return nil
}

// DefaultCatalog is the built-in hotel used when DB_DSN is not set.
func DefaultCatalog() ([]*Category, []*Room) {
	categories := []*Category{
		{ID: "standard", Name: "Standard", Position: 1},
		{ID: "double", Name: "Double", Position: 2},
		{ID: "suite", Name: "Suite", Position: 3},
		{ID: "prime-z", Name: "Prime Z", Position: 4},
		{ID: "silver", Name: "Silver", Position: 5},
	}
	rooms := []*Room{
		{ID: "bandipur", Number: "123", Name: "Bandipur Room 123", CategoryID: "standard", Position: 1,
			Features: []string{"Smoking", "House Keeping", "Work Order", "Connected", "Clean"}},
		{ID: "102", Number: "102", CategoryID: "standard", Position: 2,
			Features: []string{"No Smoking", "Work Order", "Connected", "Clean"}},
		{ID: "103", Number: "103", CategoryID: "standard", Position: 3,
			Features: []string{"No Smoking", "Work Order", "Connected", "Clean"}},
		{ID: "104", Number: "104", CategoryID: "standard", Position: 4,
			Features: []string{"Smoking", "Clean"}},
		{ID: "105", Number: "105", CategoryID: "standard", Position: 5,
			Features: []string{"No Smoking", "Clean"}},
		{ID: "201", Number: "201", CategoryID: "double", Position: 1, Features: []string{"Smoking", "Clean"}},
		{ID: "202", Number: "202", CategoryID: "double", Position: 2, Features: []string{"No Smoking", "Clean"}},
		{ID: "301", Number: "301", CategoryID: "suite", Position: 1, Features: []string{"Smoking", "Clean"}},
		{ID: "302", Number: "302", CategoryID: "suite", Position: 2, Features: []string{"No Smoking", "Clean"}},
		{ID: "401", Number: "401", CategoryID: "prime-z", Position: 1, Features: []string{"Smoking", "Clean"}},
		{ID: "402", Number: "402", CategoryID: "prime-z", Position: 2, Features: []string{"No Smoking", "Clean"}},
		{ID: "501", Number: "501", CategoryID: "silver", Position: 1, Features: []string{"Smoking", "Clean"}},
		{ID: "502", Number: "502", CategoryID: "silver", Position: 2, Features: []string{"No Smoking", "Clean"}},
	}
	return categories, rooms
}
