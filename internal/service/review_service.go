package service

import (
	"context"
	"errors"
	"time"

	dom "github.com/vbman2012/project1CS50/internal/domain"
	"github.com/vbman2012/project1CS50/internal/repo"
	"github.com/vbman2012/project1CS50/internal/utils"

	"github.com/jackc/pgx/v5"
)

// ErrAlreadyReviewed means the user has a review for this book already.
// Submission is an idempotent no-op in that case, not a hard failure.
var ErrAlreadyReviewed = errors.New("review already submitted")

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService handles review submission and aggregates.
type ReviewService struct {
	reviews repo.ReviewRepo
	books   repo.BookRepo
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviews repo.ReviewRepo, books repo.BookRepo) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

// Submit records one review for (userID, isbn). The insert is conditional
// on the (user_id, book_id) unique constraint, so concurrent duplicate
// submissions cannot produce two rows.
func (s *ReviewService) Submit(ctx context.Context, userID int64, isbn string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	inserted, err := s.reviews.Insert(ctx, dom.Review{
		UserID:    userID,
		BookID:    book.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !inserted {
		return ErrAlreadyReviewed
	}
	return nil
}

// ListForBook returns the book's reviews with usernames, oldest first.
func (s *ReviewService) ListForBook(ctx context.Context, bookID int64) ([]dom.BookReview, error) {
	return s.reviews.ListByBook(ctx, bookID)
}

// Aggregate returns count and mean rating for the ISBN. The mean is
// rounded to two decimals, half away from zero. A book with zero reviews
// yields count 0 and score 0; an unknown ISBN yields ErrNotFound.
func (s *ReviewService) Aggregate(ctx context.Context, isbn string) (dom.Aggregate, error) {
	agg, err := s.reviews.AggregateByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Aggregate{}, ErrNotFound
		}
		return dom.Aggregate{}, err
	}
	agg.AverageScore = utils.Round2(agg.AverageScore)
	return agg, nil
}
