package routes

import (
	"time"

	"podfolio-service/internal/api/handlers"
	"podfolio-service/internal/api/middleware"
	"podfolio-service/internal/events"
	"podfolio-service/internal/repository"
	"podfolio-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	engine              *gin.Engine
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	friendHandler       *handlers.FriendHandler
	conversationHandler *handlers.ConversationHandler
	feedHandler         *handlers.FeedHandler
	logHandler          *handlers.PodcastLogHandler
	rateLimitMW         *middleware.RateLimitMiddleware
	authMW              *middleware.AuthMiddleware
}

func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	publisher events.Publisher,
	jwtSecret string,
	jwtExpiry time.Duration,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	podcastRepo := repository.NewPodcastRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	// Services
	unreadCache := service.NewUnreadCache(redisClient)
	userService := service.NewUserService(userRepo, jwtSecret, jwtExpiry)
	friendService := service.NewFriendService(userRepo, friendRepo, publisher)
	conversationService := service.NewConversationService(conversationRepo, userRepo, podcastRepo, unreadCache, publisher)
	engagementService := service.NewEngagementService(engagementRepo, podcastRepo)
	podcastService := service.NewPodcastService(podcastRepo)

	return &Router{
		engine:              engine,
		authHandler:         handlers.NewAuthHandler(userService),
		userHandler:         handlers.NewUserHandler(userService),
		friendHandler:       handlers.NewFriendHandler(friendService),
		conversationHandler: handlers.NewConversationHandler(conversationService),
		feedHandler:         handlers.NewFeedHandler(engagementService),
		logHandler:          handlers.NewPodcastLogHandler(podcastService),
		rateLimitMW:         middleware.NewRateLimitMiddleware(redisClient),
		authMW:              middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Use(r.rateLimitMW.RateLimitIP(20, time.Minute))
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("/")
	authed.Use(r.authMW.RequireAuth())
	{
		users := authed.Group("/users")
		users.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			users.GET("/profile", r.userHandler.GetProfile)
			users.GET("/search", r.userHandler.SearchUsers)
		}

		friends := authed.Group("/friends")
		friends.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			friends.GET("", r.friendHandler.ListFriends)
			friends.DELETE("/:id", r.friendHandler.RemoveFriend)
			friends.POST("/requests", r.friendHandler.SendRequest)
			friends.GET("/requests/sent", r.friendHandler.ListPendingSent)
			friends.GET("/requests/received", r.friendHandler.ListPendingReceived)
			friends.PUT("/requests/:id", r.friendHandler.RespondToRequest)
		}

		conversations := authed.Group("/conversations")
		conversations.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			conversations.GET("", r.conversationHandler.ListConversations)
			conversations.GET("/unread-count", r.conversationHandler.UnreadCount)
			conversations.POST("/with/:id", r.conversationHandler.OpenConversation)
			conversations.POST("/share", r.conversationHandler.SharePodcast)
			conversations.GET("/:id/messages", r.conversationHandler.ListMessages)
			conversations.POST("/:id/messages", r.conversationHandler.PostMessage)
			conversations.PUT("/:id/read", r.conversationHandler.MarkRead)
		}

		feed := authed.Group("/feed")
		feed.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			feed.GET("", r.feedHandler.ListSharedPosts)
			feed.PUT("/:id/like", r.feedHandler.SetLike)
			feed.POST("/:id/comments", r.feedHandler.AddComment)
			feed.PUT("/share/:id", r.feedHandler.SharePost)
			feed.DELETE("/share/:id", r.feedHandler.UnsharePost)
		}

		logs := authed.Group("/logs")
		logs.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			logs.GET("", r.logHandler.ListLogs)
			logs.POST("", r.logHandler.LogListen)
			logs.PUT("/:id", r.logHandler.UpdateLog)
			logs.DELETE("/:id", r.logHandler.DeleteLog)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
