package repo

import (
	"context"
	"time"

	dom "github.com/vbman2012/project1CS50/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepo provides review persistence.
type ReviewRepo interface {
	// Insert adds a review unless one already exists for (userID, bookID).
	// Returns false with no error when the pair was already reviewed.
	Insert(ctx context.Context, rev dom.Review) (bool, error)
	ListByBook(ctx context.Context, bookID int64) ([]dom.BookReview, error)
	AggregateByISBN(ctx context.Context, isbn string) (dom.Aggregate, error)
}

// PGReviewRepo implements ReviewRepo with Postgres.
type PGReviewRepo struct {
	db *pgxpool.Pool
}

// NewPGReviewRepo returns a new PGReviewRepo.
func NewPGReviewRepo(db *pgxpool.Pool) *PGReviewRepo {
	return &PGReviewRepo{db: db}
}

// Insert performs a conditional insert against the (user_id, book_id)
// unique constraint. Two racing submissions cannot both land; the loser
// sees a zero-row result and reports the duplicate.
func (r *PGReviewRepo) Insert(ctx context.Context, rev dom.Review) (bool, error) {
	query := `
		INSERT INTO reviews (user_id, book_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, book_id) DO NOTHING`
	at := rev.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	tag, err := r.db.Exec(ctx, query, rev.UserID, rev.BookID, rev.Rating, rev.Comment, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByBook returns the book's reviews joined with the authoring
// username, oldest first.
func (r *PGReviewRepo) ListByBook(ctx context.Context, bookID int64) ([]dom.BookReview, error) {
	query := `
		SELECT users.username, reviews.rating, reviews.comment, reviews.created_at
		FROM reviews
		JOIN users ON users.id = reviews.user_id
		WHERE reviews.book_id = $1
		ORDER BY reviews.created_at ASC`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.BookReview
	for rows.Next() {
		var rev dom.BookReview
		if err := rows.Scan(&rev.Username, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

// AggregateByISBN returns count and mean rating for the book. A LEFT JOIN
// keeps books with zero reviews distinguishable from unknown ISBNs, which
// surface as pgx.ErrNoRows.
func (r *PGReviewRepo) AggregateByISBN(ctx context.Context, isbn string) (dom.Aggregate, error) {
	query := `
		SELECT books.id, books.isbn, books.title, books.author, books.year,
		       COUNT(reviews.id), COALESCE(AVG(reviews.rating), 0)
		FROM books
		LEFT JOIN reviews ON books.id = reviews.book_id
		WHERE books.isbn = $1
		GROUP BY books.id, books.isbn, books.title, books.author, books.year`
	var agg dom.Aggregate
	err := r.db.QueryRow(ctx, query, isbn).Scan(
		&agg.Book.ID, &agg.Book.ISBN, &agg.Book.Title, &agg.Book.Author, &agg.Book.Year,
		&agg.ReviewCount, &agg.AverageScore,
	)
	if err != nil {
		return dom.Aggregate{}, err
	}
	return agg, nil
}
