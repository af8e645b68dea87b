// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

// PostgreSQL implementation of the review storage layer.
//
// # One Review Per Author
//
// The UNIQUE (titleid, authorid) constraint on reviews.review is the single
// enforcement point for the one-review rule. The insert maps SQLSTATE 23505
// to apperr.Conflict, which makes the check-and-insert atomic under
// concurrency.
package review

import (
	"context"
	"fmt"
	"time"

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

// # Reviews

const reviewSelect = `
	SELECT r.id, r.text, r.score, a.username, r.authorid, r.titleid, r.createdat
	FROM reviews.review r
	JOIN users.account a ON r.authorid = a.id`

func (repository *PostgresRepository) ListReviews(context context.Context, titleID, limit, offset int) ([]Review, error) {
	query := reviewSelect + " WHERE r.titleid = $1 ORDER BY r.createdat DESC, r.id DESC LIMIT $2 OFFSET $3"

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_review_repo_list_failed: %w", err)
	}
	defer rows.Close()

	reviews := make([]Review, 0, limit)
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID, &review.Text, &review.Score,
			&review.Author, &review.AuthorID, &review.TitleID, &review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_review_repo_scan_failed: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_review_repo_rows_failed: %w", err)
	}

	return reviews, nil
}

func (repository *PostgresRepository) CountReviews(context context.Context, titleID int) (int, error) {
	var total int
	err := repository.db.QueryRow(context,
		"SELECT COUNT(*) FROM reviews.review WHERE titleid = $1", titleID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres_review_repo_count_failed: %w", err)
	}
	return total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	query := reviewSelect + " WHERE r.titleid = $1 AND r.id = $2"

	review := &Review{}
	err := repository.db.QueryRow(context, query, titleID, reviewID).Scan(
		&review.ID, &review.Text, &review.Score,
		&review.Author, &review.AuthorID, &review.TitleID, &review.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return review, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	const query = `
		INSERT INTO reviews.review (titleid, authorid, text, score, createdat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score, review.CreatedAt,
	).Scan(&review.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("You have already reviewed this title")
		}
		return fmt.Errorf("postgres_review_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	const query = `
		UPDATE reviews.review
		SET text = $2, score = $3
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int) error {
	tag, err := repository.db.Exec(context,
		"DELETE FROM reviews.review WHERE titleid = $1 AND id = $2", titleID, reviewID)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// # Comments

const commentSelect = `
	SELECT c.id, c.text, a.username, c.authorid, c.reviewid, c.createdat
	FROM reviews.comment c
	JOIN users.account a ON c.authorid = a.id`

func (repository *PostgresRepository) ListComments(context context.Context, reviewID, limit, offset int) ([]Comment, error) {
	query := commentSelect + " WHERE c.reviewid = $1 ORDER BY c.createdat, c.id LIMIT $2 OFFSET $3"

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]Comment, 0, limit)
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID, &comment.Text,
			&comment.Author, &comment.AuthorID, &comment.ReviewID, &comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, nil
}

func (repository *PostgresRepository) CountComments(context context.Context, reviewID int) (int, error) {
	var total int
	err := repository.db.QueryRow(context,
		"SELECT COUNT(*) FROM reviews.comment WHERE reviewid = $1", reviewID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}
	return total, nil
}

func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int) (*Comment, error) {
	query := commentSelect + " WHERE c.reviewid = $1 AND c.id = $2"

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, reviewID, commentID).Scan(
		&comment.ID, &comment.Text,
		&comment.Author, &comment.AuthorID, &comment.ReviewID, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO reviews.comment (reviewid, authorid, text, createdat)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = "UPDATE reviews.comment SET text = $2 WHERE id = $1"

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int) error {
	tag, err := repository.db.Exec(context,
		"DELETE FROM reviews.comment WHERE reviewid = $1 AND id = $2", reviewID, commentID)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
