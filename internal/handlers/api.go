package handlers

import (
	"errors"
	"net/http"

	"github.com/vbman2012/project1CS50/internal/dto"
	"github.com/vbman2012/project1CS50/internal/service"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON aggregate endpoint.
type APIHandler struct {
	reviews *service.ReviewService
}

// NewAPIHandler returns a new APIHandler.
func NewAPIHandler(reviews *service.ReviewService) *APIHandler {
	return &APIHandler{reviews: reviews}
}

// GetAggregate handles GET /api/:isbn.
func (h *APIHandler) GetAggregate(c *gin.Context) {
	agg, err := h.reviews.Aggregate(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusUnprocessableEntity, dto.APIError{Error: "Invalid book ISBN"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.APIError{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.AggregateResponse{
		Title:        agg.Book.Title,
		Author:       agg.Book.Author,
		Year:         agg.Book.Year,
		ISBN:         agg.Book.ISBN,
		ReviewCount:  agg.ReviewCount,
		AverageScore: agg.AverageScore,
	})
}
