package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rentChat/configs"
	_ "rentChat/docs"
	"rentChat/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx               context.Context
	config            *configs.Config
	router            *gin.Engine
	restHandler       *handlers.RestHandler
	socketChatHandler *handlers.SocketChatHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	restHandler *handlers.RestHandler,
	socketChatHandler *handlers.SocketChatHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:               ctx,
			config:            config,
			restHandler:       restHandler,
			socketChatHandler: socketChatHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()
	hs.socketChatHandler.StartSocket()

	server := hs.startServer()

	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRestfulRoutes() {
	hs.router.POST("/register", hs.restHandler.Register)
	hs.router.POST("/login", hs.restHandler.Login)

	authenticated := hs.router.Group("/", hs.restHandler.MustAuthenticateMiddleware())
	{
		authenticated.POST("/logout", hs.restHandler.Logout)
		authenticated.GET("/users", hs.restHandler.GetAllUsersWithPagination)
		authenticated.GET("/users/:id", hs.restHandler.GetSingleUser)
		authenticated.PUT("/users", hs.restHandler.UpdateUser)
		authenticated.POST("/users/profile-photo", hs.restHandler.UploadUserProfilePhoto)

		authenticated.POST("/conversations", hs.restHandler.StartConversation)
		authenticated.GET("/conversations", hs.restHandler.GetMyConversations)
		authenticated.GET("/conversations/unread-count", hs.restHandler.GetUnreadCount)
		authenticated.GET("/conversations/:id/messages", hs.restHandler.GetConversationMessages)
		authenticated.POST("/conversations/:id/read", hs.restHandler.MarkConversationRead)
		authenticated.POST("/messages", hs.restHandler.SendMessage)
	}

	hs.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/chat", hs.socketChatHandler.HandleSocketChatRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(":%d", hs.config.Viper.GetInt("server.port"))
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(hs.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	hs.socketChatHandler.CloseAllConnections()

	log.Println("Server exiting")
}
