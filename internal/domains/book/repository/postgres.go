package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "library-backend/internal/domains/author/model"
	"library-backend/internal/domains/book/model"
)

// postgresRepository implements RepositoryInterface on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Create upserts the author and inserts the book in one transaction, so two
// concurrent creates for the same new author name cannot produce duplicate
// author rows.
func (r *postgresRepository) Create(ctx context.Context, input model.AddBookInput) (*model.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Atomic find-or-create by unique name. The no-op update makes
	// RETURNING yield the existing row on conflict.
	authorQuery := `
        INSERT INTO authors (name)
        VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name, born, created_at, updated_at
    `

	var a authormodel.Author
	err = tx.QueryRow(ctx, authorQuery, input.Author).Scan(
		&a.ID,
		&a.Name,
		&a.Born,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert author: %w", mapConstraintError(err))
	}

	bookQuery := `
        INSERT INTO books (title, published, genres, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, published, genres, author_id, created_at
    `

	var b model.Book
	err = tx.QueryRow(ctx, bookQuery, input.Title, input.Published, input.Genres, a.ID).Scan(
		&b.ID,
		&b.Title,
		&b.Published,
		&b.Genres,
		&b.AuthorID,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", mapConstraintError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	b.Author = &a
	return &b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT b.id, b.title, b.published, b.genres, b.author_id, b.created_at,
               a.id, a.name, a.born, a.created_at, a.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE 1=1
    `)

	args := []interface{}{}
	argPos := 1

	if filter.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.name = $%d", argPos))
		args = append(args, filter.Author)
		argPos++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(b.genres)", argPos))
		args = append(args, filter.Genre)
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY b.created_at ASC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var a authormodel.Author
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Published,
			&b.Genres,
			&b.AuthorID,
			&b.CreatedAt,
			&a.ID,
			&a.Name,
			&a.Born,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Author = &a
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// mapConstraintError turns constraint violations into ErrInvalidBook so the
// resolver layer can surface them as user input failures.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502", "23514": // not_null_violation, check_violation
			return model.ErrInvalidBook
		}
	}
	return err
}
