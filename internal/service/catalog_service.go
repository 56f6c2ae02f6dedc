package service

import (
	"context"
	"errors"
	"strings"

	"github.com/vbman2012/project1CS50/internal/cache"
	dom "github.com/vbman2012/project1CS50/internal/domain"
	"github.com/vbman2012/project1CS50/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// CatalogService serves book lookups and search over the read-only catalog.
type CatalogService struct {
	repo  repo.BookRepo
	cache *cache.BookCache
	sf    singleflight.Group
}

// NewCatalogService creates a CatalogService. If c is nil, caching is disabled.
func NewCatalogService(r repo.BookRepo, c *cache.BookCache) *CatalogService {
	return &CatalogService{repo: r, cache: c}
}

// GetByISBN returns the book with the given ISBN.
func (s *CatalogService) GetByISBN(ctx context.Context, isbn string) (dom.Book, error) {
	b, err := s.repo.GetByISBN(ctx, strings.TrimSpace(isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Book{}, ErrNotFound
		}
		return dom.Book{}, err
	}
	return b, nil
}

// Search returns up to 15 books matching q as a case-insensitive substring
// of isbn, title or author. ErrNotFound when nothing matches.
func (s *CatalogService) Search(ctx context.Context, q string) ([]dom.Book, error) {
	q = strings.TrimSpace(q)
	var (
		list []dom.Book
		err  error
	)
	if s.cache != nil {
		key := "search:" + cache.NormalizeQuery(q)
		var v interface{}
		v, err, _ = s.sf.Do(key, func() (interface{}, error) {
			if hit, err := s.cache.GetSearch(ctx, q); err == nil && hit != nil {
				return hit, nil
			}
			found, err := s.repo.Search(ctx, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, q, found)
			return found, nil
		})
		if err == nil {
			list = v.([]dom.Book)
		}
	} else {
		list, err = s.repo.Search(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}
