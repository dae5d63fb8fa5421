// Package server assembles the HTTP API from its dependencies.
package server

import (
	"context"
	"fmt"
	"time"

	_ "gameverse/backend/docs"
	"gameverse/backend/internal/auth"
	"gameverse/backend/internal/config"
	"gameverse/backend/internal/handler"
	"gameverse/backend/internal/hub"
	"gameverse/backend/internal/metrics"
	"gameverse/backend/internal/middleware"
	"gameverse/backend/internal/repository"
	"gameverse/backend/internal/service"
	"gameverse/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps are the long-lived components the router is built from.
type Deps struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *gorm.DB
	Tokens *jwt.Manager
	Feed   *hub.Hub
}

// New builds the gin engine. ctx bounds the background cleanup of the rate limiter.
func New(ctx context.Context, d Deps) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	users := repository.NewUserRepository(d.DB)
	games := repository.NewGameRepository(d.DB)
	posts := repository.NewPostRepository(d.DB)
	comments := repository.NewCommentRepository(d.DB)

	authService := service.NewAuthService(users, d.Tokens)
	gameService := service.NewGameService(games)
	postService := service.NewPostService(posts, games, d.Feed)
	commentService := service.NewCommentService(comments, posts)

	authHandler := handler.NewAuthHandler(authService, d.Log)
	gameHandler := handler.NewGameHandler(gameService, d.Log)
	postHandler := handler.NewPostHandler(postService, d.Log)
	commentHandler := handler.NewCommentHandler(commentService, d.Log)
	feedHandler := handler.NewFeedHandler(d.Feed, d.Log)
	healthHandler := handler.NewHealthHandler(d.DB, d.Log)

	limiter := middleware.NewRateLimiter(d.Config.AuthRateLimitRPS, d.Config.AuthRateLimitBurst, d.Log)
	limiter.StartCleanup(ctx, time.Minute)

	router := gin.New()
	router.Use(
		middleware.Recovery(d.Log, !d.Config.IsProduction()),
		middleware.RequestLogger(d.Log),
		metrics.Middleware(),
		middleware.CORS(d.Config.CORSAllowedOrigins),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	requireAuth := auth.RequireAuth(d.Tokens)
	optionalAuth := auth.OptionalAuth(d.Tokens)

	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", limiter.Handler(), authHandler.Register)
			authRoutes.POST("/login", limiter.Handler(), authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", gameHandler.GetGames)
			gameRoutes.GET("/:id", gameHandler.GetGameByID)
			gameRoutes.GET("/:id/feed/stream", optionalAuth, feedHandler.StreamGamePosts)
			gameRoutes.POST("", requireAuth, gameHandler.CreateGame)
			gameRoutes.PUT("/:id", requireAuth, gameHandler.UpdateGame)
			gameRoutes.DELETE("/:id", requireAuth, gameHandler.DeleteGame)
		}

		postRoutes := apiV1.Group("/posts")
		{
			postRoutes.GET("", postHandler.GetPosts)
			postRoutes.GET("/:id", postHandler.GetPostByID)
			postRoutes.POST("", requireAuth, postHandler.CreatePost)
			postRoutes.PUT("/:id", requireAuth, postHandler.UpdatePost)
			postRoutes.DELETE("/:id", requireAuth, postHandler.DeletePost)

			postRoutes.GET("/:id/comments", commentHandler.GetComments)
			postRoutes.POST("/:id/comments", requireAuth, commentHandler.CreateComment)
		}

		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(requireAuth)
		{
			commentRoutes.PUT("/:id", commentHandler.UpdateComment)
			commentRoutes.DELETE("/:id", commentHandler.DeleteComment)
		}

		apiV1.GET("/feed/stream", optionalAuth, feedHandler.StreamPosts)
	}

	return router, nil
}
