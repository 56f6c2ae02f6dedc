package app

import (
	"github.com/vbman2012/project1CS50/internal/auth"
	"github.com/vbman2012/project1CS50/internal/cache"
	"github.com/vbman2012/project1CS50/internal/config"
	"github.com/vbman2012/project1CS50/internal/goodreads"
	"github.com/vbman2012/project1CS50/internal/handlers"
	"github.com/vbman2012/project1CS50/internal/repo"
	"github.com/vbman2012/project1CS50/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log zerolog.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	bookRepo := repo.NewPGBookRepo(db)
	reviewRepo := repo.NewPGReviewRepo(db)
	bookCache := cache.NewBookCache(rdb, cfg.Redis.SearchCacheTTL.Duration())
	catalogSvc := service.NewCatalogService(bookRepo, bookCache)
	reviewSvc := service.NewReviewService(reviewRepo, bookRepo)
	grClient := goodreads.New(cfg.Goodreads.BaseURL, cfg.Goodreads.Key, cfg.Goodreads.Timeout.Duration(), log)

	bookHandler := handlers.NewBookHandler(catalogSvc, reviewSvc, grClient, log)
	pages := r.Group("", auth.RequirePage(sessionStore))
	pages.GET("/", bookHandler.Index)
	pages.GET("/search", bookHandler.Search)
	pages.GET("/book/:isbn", bookHandler.Detail)
	pages.POST("/book/:isbn", bookHandler.SubmitReview)

	apiHandler := handlers.NewAPIHandler(reviewSvc)
	api := r.Group("/api", auth.RequireAPI(sessionStore))
	api.GET("/:isbn", apiHandler.GetAggregate)
}
