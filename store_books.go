package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

var (
	errBookNotFound = errors.New("book not found")
	errISBNTaken    = errors.New("isbn already exists")
)

const bookColumns = "id, title, author, isbn, publish_date, description, cover_image_url, created_at, updated_at"

type bookStore interface {
	listBooks(ctx context.Context) ([]book, error)
	getBook(ctx context.Context, id int64) (*book, error)
	createBook(ctx context.Context, b *book) (*book, error)
	updateBook(ctx context.Context, id int64, patch *bookPatch) (*book, error)
	deleteBook(ctx context.Context, id int64) error
	searchBooks(ctx context.Context, q string) ([]book, error)
	setBookCover(ctx context.Context, id int64, url string) (*book, error)
}

type postgresBookStore struct {
	db *sql.DB
}

func newPostgresBookStore(db *sql.DB) *postgresBookStore {
	return &postgresBookStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*book, error) {
	var b book
	if err := row.Scan(&b.id, &b.title, &b.author, &b.isbn, &b.publish_date, &b.description, &b.cover_image_url, &b.created_at, &b.updated_at); err != nil {
		return nil, err
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation
}

func (s *postgresBookStore) listBooks(ctx context.Context) ([]book, error) {
	query := fmt.Sprintf(
		`
			SELECT %s FROM books ORDER BY id;
		`, bookColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing books, %v", err)
	}
	defer rows.Close()

	books := []book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book, %v", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books, %v", err)
	}
	return books, nil
}

func (s *postgresBookStore) getBook(ctx context.Context, id int64) (*book, error) {
	query := fmt.Sprintf(
		`
			SELECT %s FROM books WHERE id = $1;
		`, bookColumns)

	b, err := scanBook(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting book, %v", err)
	}
	return b, nil
}

func (s *postgresBookStore) createBook(ctx context.Context, b *book) (*book, error) {
	query := fmt.Sprintf(
		`
			INSERT INTO books (title, author, isbn, publish_date, description, cover_image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING %s;
		`, bookColumns)

	created, err := scanBook(s.db.QueryRowContext(ctx, query, b.title, b.author, b.isbn, b.publish_date, b.description, b.cover_image_url))
	if isUniqueViolation(err) {
		return nil, errISBNTaken
	}
	if err != nil {
		return nil, fmt.Errorf("error inserting book, %v", err)
	}
	return created, nil
}

func (s *postgresBookStore) updateBook(ctx context.Context, id int64, patch *bookPatch) (*book, error) {
	setStrings := []string{"updated_at = now()"}
	setArgs := []interface{}{}
	position := 1

	set := func(column string, value interface{}) {
		setStrings = append(setStrings, fmt.Sprintf("%s = $%d", column, position))
		setArgs = append(setArgs, value)
		position++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Author != nil {
		set("author", *patch.Author)
	}
	if patch.ISBN != nil {
		set("isbn", *patch.ISBN)
	}
	if patch.PublishDate != nil {
		set("publish_date", *patch.PublishDate)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.CoverImageURL != nil {
		set("cover_image_url", *patch.CoverImageURL)
	}

	query := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d RETURNING %s;", strings.Join(setStrings, ", "), position, bookColumns)
	setArgs = append(setArgs, id)

	updated, err := scanBook(s.db.QueryRowContext(ctx, query, setArgs...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errBookNotFound
	}
	if isUniqueViolation(err) {
		return nil, errISBNTaken
	}
	if err != nil {
		return nil, fmt.Errorf("error updating book, %v", err)
	}
	return updated, nil
}

func (s *postgresBookStore) deleteBook(ctx context.Context, id int64) error {
	query :=
		`
			DELETE FROM books WHERE id = $1;
		`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting book, %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking number of rows affected, %v", err)
	}
	if rows == 0 {
		return errBookNotFound
	}
	return nil
}

func (s *postgresBookStore) searchBooks(ctx context.Context, q string) ([]book, error) {
	query := fmt.Sprintf(
		`
			SELECT %s FROM books
			WHERE title ILIKE $1 OR author ILIKE $1 OR isbn ILIKE $1
			ORDER BY id;
		`, bookColumns)

	rows, err := s.db.QueryContext(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("error searching books, %v", err)
	}
	defer rows.Close()

	books := []book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book, %v", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books, %v", err)
	}
	return books, nil
}

func (s *postgresBookStore) setBookCover(ctx context.Context, id int64, url string) (*book, error) {
	query := fmt.Sprintf(
		`
			UPDATE books SET cover_image_url = $1, updated_at = now() WHERE id = $2 RETURNING %s;
		`, bookColumns)

	updated, err := scanBook(s.db.QueryRowContext(ctx, query, url, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error setting book cover, %v", err)
	}
	return updated, nil
}
