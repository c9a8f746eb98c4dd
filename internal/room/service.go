package room

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Number     string
	Name       string
	CategoryID string
	Features   []string
	Position   int
}

type Service interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	ListRooms(ctx context.Context, filter Filter) ([]*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	// OrderedRooms returns the filtered rooms in display order with
	// duplicate ids removed, first occurrence wins.
	OrderedRooms(ctx context.Context, filter Filter) ([]*Room, error)
}

type service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListRooms(ctx context.Context, filter Filter) ([]*Room, error) {
	if rooms, ok := s.cache.GetRooms(ctx, filter); ok {
		return rooms, nil
	}
	rooms, err := s.repo.ListRooms(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.SetRooms(ctx, filter, rooms)
	return rooms, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	category, err := s.repo.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	rm := &Room{
		Number:       number,
		Name:         strings.TrimSpace(req.Name),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Features:     req.Features,
		Position:     req.Position,
	}
	if rm.Features == nil {
		rm.Features = []string{}
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return rm, nil
}

func (s *service) OrderedRooms(ctx context.Context, filter Filter) ([]*Room, error) {
	rooms, err := s.ListRooms(ctx, filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rooms))
	result := make([]*Room, 0, len(rooms))
	for _, rm := range rooms {
		if seen[rm.ID] {
			continue
		}
		seen[rm.ID] = true
		result = append(result, rm)
	}
	return result, nil
}
