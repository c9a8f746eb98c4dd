package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the room catalog. Room ids are the human-facing keys
// used as grid row ids ("102", "bandipur").
var schema = []string{
	`CREATE TABLE IF NOT EXISTS public.room_categories (
		id         text PRIMARY KEY,
		name       text NOT NULL,
		position   integer NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS public.rooms (
		id          text PRIMARY KEY DEFAULT gen_random_uuid()::text,
		number      text NOT NULL UNIQUE,
		name        text NOT NULL DEFAULT '',
		category_id text NOT NULL REFERENCES public.room_categories(id),
		features    text[] NOT NULL DEFAULT '{}',
		position    integer NOT NULL DEFAULT 0,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS rooms_category_position_idx ON public.rooms (category_id, position)`,
}

// EnsureSchema applies the catalog DDL. Every statement is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
