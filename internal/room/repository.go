package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListRooms(ctx context.Context, filter Filter) ([]*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	Create(ctx context.Context, room *Room) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "position", "created_at").
		From("public.room_categories").
		OrderBy("position ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category failed: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *pgxRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "position", "created_at").
		From("public.room_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get category query failed: %w", err)
	}

	var c Category
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Position, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) selectRooms() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"r.id", "r.number", "r.name", "r.category_id", "c.name",
		"r.features", "r.position", "r.created_at",
	).
		From("public.rooms r").
		Join("public.room_categories c ON r.category_id = c.id")
}

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.Number, &rm.Name, &rm.CategoryID, &rm.CategoryName,
		&rm.Features, &rm.Position, &rm.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *pgxRepository) ListRooms(ctx context.Context, filter Filter) ([]*Room, error) {
	query := r.selectRooms()

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"r.name": pattern},
			squirrel.ILike{"r.number": pattern},
		})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"r.category_id": filter.CategoryID})
	}
	if filter.Feature != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM unnest(r.features) f WHERE lower(f) = lower(?))", filter.Feature,
		))
	}
	if filter.Floor != "" {
		query = query.Where(squirrel.Like{"r.number": filter.Floor + "%"})
	}

	// Row order on screen: category order first, then room order.
	query = query.OrderBy("c.position ASC", "r.position ASC", "r.number ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var result []*Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		result = append(result, rm)
	}
	return result, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	sql, args, err := r.selectRooms().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	rm, err := scanRoom(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return rm, nil
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("id", "number", "name", "category_id", "features", "position").
		Values(rm.Number, rm.Number, rm.Name, rm.CategoryID, rm.Features, rm.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	// The room number doubles as the row id on the timeline.
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrDuplicateNumber
			case pgerrcode.ForeignKeyViolation:
				return ErrCategoryNotFound
			}
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}
