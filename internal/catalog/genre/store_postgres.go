// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]Genre, error) {
	const query = `
		SELECT id, name, slug FROM catalog.genre
		ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_list_failed: %w", err)
	}
	defer rows.Close()

	genres := make([]Genre, 0, limit)
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, fmt.Errorf("postgres_genre_repo_scan_failed: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_rows_failed: %w", err)
	}

	return genres, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	if err := repository.db.QueryRow(context, "SELECT COUNT(*) FROM catalog.genre").Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_genre_repo_count_failed: %w", err)
	}
	return total, nil
}

// FindBySlugs resolves a set of slugs to genres. The result preserves no
// particular order; callers must check the length to detect unknown slugs.
func (repository *PostgresRepository) FindBySlugs(context context.Context, slugs []string) ([]Genre, error) {
	const query = "SELECT id, name, slug FROM catalog.genre WHERE slug = ANY($1)"

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_find_by_slugs_failed: %w", err)
	}
	defer rows.Close()

	genres := make([]Genre, 0, len(slugs))
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, fmt.Errorf("postgres_genre_repo_scan_failed: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_rows_failed: %w", err)
	}

	return genres, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	const query = `
		INSERT INTO catalog.genre (name, slug) VALUES ($1, $2)
		RETURNING id`

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Genre slug already exists")
		}
		return fmt.Errorf("postgres_genre_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	tag, err := repository.db.Exec(context, "DELETE FROM catalog.genre WHERE slug = $1", slug)
	if err != nil {
		return fmt.Errorf("postgres_genre_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
