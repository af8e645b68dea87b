// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package category

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

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]Category, error) {
	const query = `
		SELECT id, name, slug FROM catalog.category
		ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0, limit)
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_category_repo_rows_failed: %w", err)
	}

	return categories, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	if err := repository.db.QueryRow(context, "SELECT COUNT(*) FROM catalog.category").Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_category_repo_count_failed: %w", err)
	}
	return total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	const query = "SELECT id, name, slug FROM catalog.category WHERE slug = $1"

	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return category, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (name, slug) VALUES ($1, $2)
		RETURNING id`

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Category slug already exists")
		}
		return fmt.Errorf("postgres_category_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	tag, err := repository.db.Exec(context, "DELETE FROM catalog.category WHERE slug = $1", slug)
	if err != nil {
		return fmt.Errorf("postgres_category_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
