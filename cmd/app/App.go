package app

import (
	"context"
	"sync"

	"rentChat/configs"
	"rentChat/internal/handlers"
	"rentChat/internal/repositories"
	"rentChat/internal/servers/database"
	"rentChat/internal/servers/http"
	"rentChat/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)

	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.configs)

	conversationRepo := repositories.NewConversationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	chatService := services.NewChatService(conversationRepo, messageRepo)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)

	restHandler := handlers.NewRestHandler(
		app.ctx,
		app.redis,
		authService,
		chatService,
		fileManagerService,
	)

	socketChatHandler := handlers.NewSocketChatHandler(app.redis, app.ctx, authService, chatService)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		restHandler,
		socketChatHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.address"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}
