package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "goforum/internal/app"
	"goforum/internal/bootstrap"
	"goforum/internal/cache"
	"goforum/internal/platform/rabbitmq"
	"goforum/internal/repository"
	"goforum/internal/transport/http/handler"
	"goforum/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	commentRepo := repository.NewCommentRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	feedCache := cache.NewFeedCache(app.Redis, time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	userService := appsvc.NewUserService(userRepo, activityPublisher)
	postService := appsvc.NewPostService(postRepo, userRepo, feedCache, activityPublisher)
	commentService := appsvc.NewCommentService(commentRepo, postRepo, userRepo, feedCache, activityPublisher)
	activityService := appsvc.NewActivityService(activityRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService, commentService)
	commentHandler := handler.NewCommentHandler(commentService)
	activityHandler := handler.NewActivityHandler(activityService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)
	authGroup.GET("/validate", authJWT, authHandler.Validate)

	userGroup := v1.Group("/users")
	userGroup.Use(authJWT)
	userGroup.GET("", middleware.RequireAdmin(), userHandler.List)
	userGroup.GET("/:id", userHandler.Get)
	userGroup.PATCH("/:id", userHandler.Update)
	userGroup.DELETE("/:id", userHandler.Delete)
	userGroup.GET("/:id/comments", commentHandler.ListByUser)

	postGroup := v1.Group("/posts")
	postGroup.GET("", postHandler.List)
	postGroup.GET("/hot", postHandler.ListHot)
	postGroup.GET("/:id", postHandler.Get)
	postGroup.POST("", authJWT, postHandler.Create)
	postGroup.PATCH("/:id", authJWT, postHandler.Update)
	postGroup.DELETE("/:id", authJWT, postHandler.Delete)

	postGroup.GET("/:id/comments", commentHandler.ListByPost)
	postGroup.POST("/:id/comments", authJWT, commentHandler.Create)
	postGroup.PATCH("/:id/comments/:commentId", authJWT, commentHandler.Update)
	postGroup.DELETE("/:id/comments/:commentId", authJWT, commentHandler.Delete)

	activityGroup := v1.Group("/activities")
	activityGroup.Use(authJWT, middleware.RequireAdmin())
	activityGroup.GET("", activityHandler.ListRecent)

	return router
}
