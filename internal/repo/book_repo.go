package repo

import (
	"context"

	dom "github.com/vbman2012/project1CS50/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// searchLimit caps the number of rows a catalog search returns.
const searchLimit = 15

// BookRepo provides read access to the book catalog.
type BookRepo interface {
	GetByISBN(ctx context.Context, isbn string) (dom.Book, error)
	Search(ctx context.Context, q string) ([]dom.Book, error)
}

// PGBookRepo implements BookRepo with Postgres.
type PGBookRepo struct {
	db *pgxpool.Pool
}

// NewPGBookRepo returns a new PGBookRepo.
func NewPGBookRepo(db *pgxpool.Pool) *PGBookRepo {
	return &PGBookRepo{db: db}
}

// GetByISBN returns the book with the given ISBN.
func (r *PGBookRepo) GetByISBN(ctx context.Context, isbn string) (dom.Book, error) {
	var b dom.Book
	err := r.db.QueryRow(ctx,
		`SELECT id, isbn, title, author, year FROM books WHERE isbn = $1`,
		isbn,
	).Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Year)
	return b, err
}

// Search matches q as a case-insensitive substring of isbn, title or author.
func (r *PGBookRepo) Search(ctx context.Context, q string) ([]dom.Book, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, isbn, title, author, year
		FROM books
		WHERE isbn ILIKE $1 OR title ILIKE $1 OR author ILIKE $1
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Book
	for rows.Next() {
		var b dom.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
