// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

// PostgreSQL implementation of the title storage layer.
//
// # Rating
//
// The rating column does not exist; every read computes AVG(score) over the
// title's reviews inline. Postgres resolves this with the covering index on
// reviews.review(titleid).
package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vqduong/scorebook/internal/catalog/category"
	"github.com/vqduong/scorebook/internal/catalog/genre"
	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/dberr"
)

// titleSelect is the shared SELECT head for hydrating titles.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       (SELECT AVG(r.score)::float8 FROM reviews.review r WHERE r.titleid = t.id) AS rating,
	       c.id, c.name, c.slug
	FROM catalog.title t
	LEFT JOIN catalog.category c ON t.categoryid = c.id`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildFilter translates a [Filter] into WHERE clauses and positional args.
func buildFilter(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		clauses = append(clauses, "c.slug = "+next())
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		clauses = append(clauses, `t.id IN (
			SELECT tg.titleid FROM catalog.title_genre tg
			JOIN catalog.genre g ON tg.genreid = g.id
			WHERE g.slug = `+next()+")")
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		clauses = append(clauses, "t.name ILIKE "+next())
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		clauses = append(clauses, "t.year = "+next())
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]Title, error) {
	where, args := buildFilter(filter)
	query := titleSelect + where +
		fmt.Sprintf(" ORDER BY t.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_title_repo_list_failed: %w", err)
	}
	defer rows.Close()

	titles := make([]Title, 0, limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, *title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_title_repo_rows_failed: %w", err)
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, err
	}

	return titles, nil
}

func (repository *PostgresRepository) Count(context context.Context, filter Filter) (int, error) {
	where, args := buildFilter(filter)
	query := `
		SELECT COUNT(*)
		FROM catalog.title t
		LEFT JOIN catalog.category c ON t.categoryid = c.id` + where

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_title_repo_count_failed: %w", err)
	}

	return total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Title, error) {
	query := titleSelect + " WHERE t.id = $1"

	row := repository.db.QueryRow(context, query, id)
	title, err := scanTitle(row)
	if err != nil {
		return nil, dberr.Wrap(err, "Title")
	}

	titles := []Title{*title}
	if err := repository.attachGenres(context, titles); err != nil {
		return nil, err
	}

	return &titles[0], nil
}

func (repository *PostgresRepository) Exists(context context.Context, id int) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)"

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_title_repo_exists_failed: %w", err)
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, categoryID *int, genreIDs []int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const insert = `
		INSERT INTO catalog.title (name, year, description, categoryid)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err = transaction.QueryRow(context, insert,
		title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.ID)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_create_failed: %w", err)
	}

	if err := insertGenreJoins(context, transaction, title.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_repo_commit_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, categoryID *int, genreIDs []int, replaceGenres bool) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const update = `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, categoryid = $5
		WHERE id = $1`

	tag, err := transaction.Exec(context, update,
		title.ID, title.Name, title.Year, title.Description, categoryID,
	)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		if _, err := transaction.Exec(context, "DELETE FROM catalog.title_genre WHERE titleid = $1", title.ID); err != nil {
			return fmt.Errorf("postgres_title_repo_clear_genres_failed: %w", err)
		}
		if err := insertGenreJoins(context, transaction, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_repo_commit_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM catalog.title WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// insertGenreJoins writes the title_genre rows inside the caller's transaction.
func insertGenreJoins(context context.Context, transaction pgx.Tx, titleID int, genreIDs []int) error {
	for _, genreID := range genreIDs {
		_, err := transaction.Exec(context,
			"INSERT INTO catalog.title_genre (titleid, genreid) VALUES ($1, $2)",
			titleID, genreID,
		)
		if err != nil {
			return fmt.Errorf("postgres_title_repo_genre_join_failed: %w", err)
		}
	}
	return nil
}

// scanTitle hydrates a title row, tolerating the absent category.
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{Genres: make([]genre.Genre, 0)}

	var categoryID *int
	var categoryName, categorySlug *string

	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.Rating,
		&categoryID,
		&categoryName,
		&categorySlug,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &category.Category{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return title, nil
}

// attachGenres loads the genre lists for a batch of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int, len(titles))
	index := make(map[int]*Title, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
		index[titles[i].ID] = &titles[i]
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM catalog.title_genre tg
		JOIN catalog.genre g ON tg.genreid = g.id
		WHERE tg.titleid = ANY($1)
		ORDER BY g.name`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_genres_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		var g genre.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return fmt.Errorf("postgres_title_repo_genres_scan_failed: %w", err)
		}
		if target, ok := index[titleID]; ok {
			target.Genres = append(target.Genres, g)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_title_repo_genres_rows_failed: %w", err)
	}

	return nil
}
