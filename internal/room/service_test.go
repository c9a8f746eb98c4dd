package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	categories, rooms := DefaultCatalog()
	return NewService(NewMemoryRepository(categories, rooms), nil)
}

func ids(rooms []*Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	return out
}

func TestListRoomsFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter keeps display order", Filter{}, []string{
			"bandipur", "102", "103", "104", "105", "201", "202", "301", "302", "401", "402", "501", "502",
		}},
		{"query matches label", Filter{Query: "bandi"}, []string{"bandipur"}},
		{"query is case insensitive", Filter{Query: "BANDIPUR"}, []string{"bandipur"}},
		{"category", Filter{CategoryID: "double"}, []string{"201", "202"}},
		{"feature", Filter{Feature: "connected"}, []string{"bandipur", "102", "103"}},
		{"floor", Filter{Floor: "3"}, []string{"301", "302"}},
		{"combined", Filter{CategoryID: "standard", Feature: "Smoking"}, []string{"bandipur", "104"}},
		{"nothing matches", Filter{Query: "penthouse"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := svc.ListRooms(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rooms))
		})
	}
}

func TestOrderedRoomsDeduplicates(t *testing.T) {
	categories := []*Category{
		{ID: "suite", Name: "Suite", Position: 1},
		{ID: "prime-z", Name: "Prime Z", Position: 2},
	}
	rooms := []*Room{
		{ID: "301", Number: "301", CategoryID: "suite", Position: 1},
		{ID: "302", Number: "302", CategoryID: "suite", Position: 2},
		{ID: "301", Number: "301", CategoryID: "prime-z", Position: 1},
	}
	svc := NewService(NewMemoryRepository(categories, rooms), nil)

	ordered, err := svc.OrderedRooms(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"301", "302"}, ids(ordered))
	assert.Equal(t, "suite", ordered[0].CategoryID, "first occurrence wins")
}

func TestCreateRoom(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rm, err := svc.Create(ctx, CreateRequest{Number: " 106 ", CategoryID: "standard", Position: 6})
		require.NoError(t, err)
		assert.Equal(t, "106", rm.ID)
		assert.Equal(t, "Standard", rm.CategoryName)
		assert.Equal(t, []string{}, rm.Features)

		got, err := svc.GetByID(ctx, "106")
		require.NoError(t, err)
		assert.Equal(t, "106", got.Number)
	})

	t.Run("Duplicate number", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Number: "102", CategoryID: "standard"})
		assert.ErrorIs(t, err, ErrDuplicateNumber)
	})

	t.Run("Empty number", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Number: "  ", CategoryID: "standard"})
		assert.ErrorIs(t, err, ErrEmptyNumber)
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Number: "999", CategoryID: "penthouse"})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestGetByIDNotFound(t *testing.T) {
	_, err := newTestService().GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCategoriesOrdered(t *testing.T) {
	categories, err := newTestService().ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 5)
	assert.Equal(t, "standard", categories[0].ID)
	assert.Equal(t, "silver", categories[4].ID)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.GetRooms(ctx, Filter{})
	assert.False(t, ok)
	c.SetRooms(ctx, Filter{}, nil)
	c.Invalidate(ctx)
	assert.Nil(t, NewCache(nil, 0))
}
