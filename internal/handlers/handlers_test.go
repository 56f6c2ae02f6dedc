package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vbman2012/project1CS50/internal/auth"
	dom "github.com/vbman2012/project1CS50/internal/domain"
	"github.com/vbman2012/project1CS50/internal/goodreads"
	"github.com/vbman2012/project1CS50/internal/handlers"
	"github.com/vbman2012/project1CS50/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// -------- in-memory repo fakes --------

type fakeUserRepo struct {
	users  map[string]dom.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]dom.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, ok := f.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	if _, ok := f.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: f.nextID, Username: username, PasswordHash: passwordHash}
	f.nextID++
	f.users[username] = u
	return u, nil
}

type fakeBookRepo struct {
	books []dom.Book
}

func (f *fakeBookRepo) GetByISBN(ctx context.Context, isbn string) (dom.Book, error) {
	for _, b := range f.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return dom.Book{}, pgx.ErrNoRows
}

func (f *fakeBookRepo) Search(ctx context.Context, q string) ([]dom.Book, error) {
	q = strings.ToLower(q)
	var out []dom.Book
	for _, b := range f.books {
		if strings.Contains(strings.ToLower(b.ISBN), q) ||
			strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

type reviewKey struct{ userID, bookID int64 }

type fakeReviewRepo struct {
	books   *fakeBookRepo
	reviews map[reviewKey]dom.Review
}

func newFakeReviewRepo(books *fakeBookRepo) *fakeReviewRepo {
	return &fakeReviewRepo{books: books, reviews: map[reviewKey]dom.Review{}}
}

func (f *fakeReviewRepo) Insert(ctx context.Context, rev dom.Review) (bool, error) {
	key := reviewKey{rev.UserID, rev.BookID}
	if _, ok := f.reviews[key]; ok {
		return false, nil
	}
	f.reviews[key] = rev
	return true, nil
}

func (f *fakeReviewRepo) ListByBook(ctx context.Context, bookID int64) ([]dom.BookReview, error) {
	var out []dom.BookReview
	for _, rev := range f.reviews {
		if rev.BookID == bookID {
			out = append(out, dom.BookReview{
				Username:  "user",
				Rating:    rev.Rating,
				Comment:   rev.Comment,
				CreatedAt: rev.CreatedAt,
			})
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AggregateByISBN(ctx context.Context, isbn string) (dom.Aggregate, error) {
	book, err := f.books.GetByISBN(ctx, isbn)
	if err != nil {
		return dom.Aggregate{}, err
	}
	agg := dom.Aggregate{Book: book}
	var sum int64
	for _, rev := range f.reviews {
		if rev.BookID == book.ID {
			agg.ReviewCount++
			sum += int64(rev.Rating)
		}
	}
	if agg.ReviewCount > 0 {
		agg.AverageScore = float64(sum) / float64(agg.ReviewCount)
	}
	return agg, nil
}

// -------- router fixture --------

type fixture struct {
	router  *gin.Engine
	users   *fakeUserRepo
	books   *fakeBookRepo
	reviews *fakeReviewRepo
}

func seededBooks() []dom.Book {
	return []dom.Book{
		{ID: 1, ISBN: "0439554934", Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", Year: 1997},
		{ID: 2, ISBN: "0553380168", Title: "A Brief History of Time", Author: "Stephen Hawking", Year: 1988},
	}
}

// newFixture builds a router with fake repositories and a stubbed
// authenticated identity (user 7).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		users: newFakeUserRepo(),
		books: &fakeBookRepo{books: seededBooks()},
	}
	f.reviews = newFakeReviewRepo(f.books)

	userSvc := service.NewUserService(f.users)
	catalogSvc := service.NewCatalogService(f.books, nil)
	reviewSvc := service.NewReviewService(f.reviews, f.books)
	grClient := goodreads.New("", "", time.Second, zerolog.Nop())

	sessions := auth.NewStore(nil, time.Hour)
	authHandler := handlers.NewAuthHandler(sessions, userSvc)
	bookHandler := handlers.NewBookHandler(catalogSvc, reviewSvc, grClient, zerolog.Nop())
	apiHandler := handlers.NewAPIHandler(reviewSvc)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	stubAuth := func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{UserID: 7, Username: "tester"})
	}
	pages := r.Group("", stubAuth)
	pages.GET("/", bookHandler.Index)
	pages.GET("/search", bookHandler.Search)
	pages.GET("/book/:isbn", bookHandler.Detail)
	pages.POST("/book/:isbn", bookHandler.SubmitReview)

	api := r.Group("/api", stubAuth)
	api.GET("/:isbn", apiHandler.GetAggregate)

	f.router = r
	return f
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}
