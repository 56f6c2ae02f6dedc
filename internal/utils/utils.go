package utils

import (
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPGUniqueViolation reports whether error is PostgreSQL unique constraint violation (code 23505).
func IsPGUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatReviewTime renders a review timestamp as "02 Jan 06 - 15:04:05"
// for the book page.
func FormatReviewTime(t time.Time) string {
	return t.Format("02 Jan 06 - 15:04:05")
}
