package domain

import "time"

// Review is a single user's rating and comment for a book.
// At most one review exists per (user, book) pair.
type Review struct {
	ID        int64
	UserID    int64
	BookID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// BookReview is a review joined with the author's username, as shown
// on the book page.
type BookReview struct {
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Aggregate holds the review count and mean rating for a book.
type Aggregate struct {
	Book         Book
	ReviewCount  int64
	AverageScore float64
}
