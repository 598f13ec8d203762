package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/petconnect/petconnect-BE/internal/alert"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/moderation"
	"github.com/petconnect/petconnect-BE/internal/notification"
	"github.com/petconnect/petconnect-BE/internal/realtime"
	"github.com/petconnect/petconnect-BE/internal/storage"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/util"
	"github.com/petconnect/petconnect-BE/internal/worker"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

type Server struct {
	router            *gin.Engine
	dbStore           db.Store
	fileStore         storage.FileStore
	tokenMaker        token.Maker
	config            *util.Config
	taskDistributor   worker.TaskDistributor
	notifier          *notification.Engine
	streamer          *realtime.Streamer
	moderationService *moderation.Service
	alertService      *alert.Service
	restyClient       *resty.Client
	wsUpgrader        websocket.Upgrader
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, taskDistributor worker.TaskDistributor, config *util.Config, alertService *alert.Service) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	// Create a new Cloudinary instance
	fileStore := storage.NewCloudinaryStore(config.CloudinaryURL)
	log.Info().Msg("Cloudinary store created successfully ✅")

	restyClient := resty.New()

	server := &Server{
		dbStore:           store,
		tokenMaker:        tokenMaker,
		config:            config,
		fileStore:         fileStore,
		taskDistributor:   taskDistributor,
		notifier:          notification.NewEngine(store),
		streamer:          realtime.NewStreamer(store),
		moderationService: moderation.NewService(restyClient, config.GeminiAPIKey, config.GeminiModel),
		alertService:      alertService,
		restyClient:       restyClient,
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	v1.POST("/tokens/verify", server.verifyAccessToken)

	v1.POST("/auth/signup", server.signupUser)
	v1.POST("/auth/login", server.loginUser)

	userGroup := v1.Group("/users", authMiddleware(server.tokenMaker))
	{
		userGroup.GET("me", server.getCurrentUser)
	}

	profileGroup := v1.Group("/profiles")
	{
		profileGroup.GET(":id", server.getProfile)

		profileGroup.Use(authMiddleware(server.tokenMaker))
		profileGroup.GET("nearby", server.listNearbyProfiles)
		profileGroup.PUT("me", server.updateProfile)
		profileGroup.PATCH("me/avatar", server.updateAvatar)
		profileGroup.POST(":id/follow", server.followProfile)
		profileGroup.DELETE(":id/follow", server.unfollowProfile)
	}

	postGroup := v1.Group("/posts")
	{
		postGroup.GET(":postID", optionalAuthMiddleware(server.tokenMaker), server.getPost)
		postGroup.GET("user/:userID", server.listPostsByUser)
		postGroup.GET(":postID/comments", server.listComments)

		postGroup.Use(authMiddleware(server.tokenMaker))
		postGroup.POST("", server.createPost)
		postGroup.DELETE(":postID", server.deletePost)
		postGroup.POST(":postID/like", server.likePost)
		postGroup.DELETE(":postID/like", server.unlikePost)
		postGroup.POST(":postID/comments", server.createComment)
		postGroup.POST(":postID/report", server.reportPost)
	}

	commentGroup := v1.Group("/comments", authMiddleware(server.tokenMaker))
	{
		commentGroup.DELETE(":commentID", server.deleteComment)
		commentGroup.POST(":commentID/report", server.reportComment)
	}

	conversationGroup := v1.Group("/conversations", authMiddleware(server.tokenMaker))
	{
		conversationGroup.GET("", server.listConversations)
		conversationGroup.POST("", server.createConversation)
		conversationGroup.GET(":conversationID/messages", server.listMessages)
		conversationGroup.POST(":conversationID/messages", server.sendMessage)
	}

	notificationGroup := v1.Group("/notifications")
	{
		// The websocket handshake cannot carry an Authorization header,
		// so this endpoint authenticates through a query parameter itself.
		notificationGroup.GET("ws", server.streamNotifications)

		notificationGroup.Use(authMiddleware(server.tokenMaker))
		notificationGroup.GET("", server.listNotifications)
		notificationGroup.DELETE(":notificationID", server.deleteNotification)
	}

	v1.POST("/moderation/text", authMiddleware(server.tokenMaker), server.moderateText)

	moderatorGroup := v1.Group("/mod", authMiddleware(server.tokenMaker), requiredModeratorRole())
	{
		moderatorGroup.DELETE("posts/:postID", server.deletePostByModerator)
		moderatorGroup.DELETE("comments/:commentID", server.deleteCommentByModerator)
	}

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
