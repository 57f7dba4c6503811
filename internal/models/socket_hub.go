package models

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type SocketClient struct {
	Conn   *websocket.Conn
	UserId uint
}

type SocketHub struct {
	Conversations map[uint][]*SocketClient
	Mu            sync.Mutex
	Redis         *redis.Client
}
