package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vbman2012/project1CS50/internal/auth"
	dom "github.com/vbman2012/project1CS50/internal/domain"
	"github.com/vbman2012/project1CS50/internal/dto"
	"github.com/vbman2012/project1CS50/internal/goodreads"
	"github.com/vbman2012/project1CS50/internal/service"
	"github.com/vbman2012/project1CS50/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BookHandler serves the search pages and the book detail/review page.
type BookHandler struct {
	catalog   *service.CatalogService
	reviews   *service.ReviewService
	goodreads *goodreads.Client
	log       zerolog.Logger
}

// NewBookHandler returns a new BookHandler.
func NewBookHandler(catalog *service.CatalogService, reviews *service.ReviewService, gr *goodreads.Client, log zerolog.Logger) *BookHandler {
	return &BookHandler{catalog: catalog, reviews: reviews, goodreads: gr, log: log}
}

// Index renders the search landing page.
func (h *BookHandler) Index(c *gin.Context) {
	id, _ := auth.IdentityFromContext(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Username": id.Username,
		"Flash":    auth.PopFlash(c),
	})
}

// Search handles GET /search?book=q.
func (h *BookHandler) Search(c *gin.Context) {
	q := c.Query("book")
	if q == "" {
		renderError(c, http.StatusBadRequest, "you must provide a book.")
		return
	}
	books, err := h.catalog.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderError(c, http.StatusNotFound, "we can't find books with that description.")
			return
		}
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}
	c.HTML(http.StatusOK, "results.html", gin.H{"Books": books})
}

// reviewView is a review row as shown on the book page.
type reviewView struct {
	Username string
	Rating   int
	Comment  string
	Time     string
}

// Detail handles GET /book/:isbn. A failed Goodreads lookup only drops
// the external numbers from the page, it never fails the request.
func (h *BookHandler) Detail(c *gin.Context) {
	isbn := c.Param("isbn")
	book, err := h.catalog.GetByISBN(c.Request.Context(), isbn)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderError(c, http.StatusNotFound, "we can't find a book with that ISBN.")
			return
		}
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}

	var external *goodreads.ReviewCounts
	counts, err := h.goodreads.ReviewCounts(c.Request.Context(), book.ISBN)
	if err != nil {
		h.log.Warn().Err(err).Str("isbn", book.ISBN).Msg("goodreads lookup skipped")
	} else {
		external = &counts
	}

	list, err := h.reviews.ListForBook(c.Request.Context(), book.ID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}

	c.HTML(http.StatusOK, "book.html", gin.H{
		"Book":     book,
		"External": external,
		"Reviews":  reviewsToViews(list),
		"Flash":    auth.PopFlash(c),
	})
}

// SubmitReview handles POST /book/:isbn.
func (h *BookHandler) SubmitReview(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	isbn := c.Param("isbn")

	var form dto.ReviewForm
	_ = c.ShouldBind(&form)
	rating, err := strconv.Atoi(form.Rating)
	if err != nil {
		renderError(c, http.StatusBadRequest, "rating must be a number")
		return
	}

	err = h.reviews.Submit(c.Request.Context(), id.UserID, isbn, rating, form.Comment)
	switch {
	case err == nil:
		auth.SetFlash(c, "Review submitted!")
	case errors.Is(err, service.ErrAlreadyReviewed):
		auth.SetFlash(c, "You already submitted a review for this book")
	case errors.Is(err, service.ErrNotFound):
		renderError(c, http.StatusNotFound, "we can't find a book with that ISBN.")
		return
	case errors.Is(err, service.ErrInvalidRating):
		renderError(c, http.StatusBadRequest, err.Error())
		return
	default:
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}
	c.Redirect(http.StatusFound, "/book/"+isbn)
}

func reviewsToViews(list []dom.BookReview) []reviewView {
	out := make([]reviewView, len(list))
	for i, rev := range list {
		out[i] = reviewView{
			Username: rev.Username,
			Rating:   rev.Rating,
			Comment:  rev.Comment,
			Time:     utils.FormatReviewTime(rev.CreatedAt),
		}
	}
	return out
}
