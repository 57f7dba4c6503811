package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"rentChat/internal/enums"
	"rentChat/internal/errs"
	"rentChat/internal/models"
	redisModels "rentChat/internal/models/redis"
	socketModels "rentChat/internal/models/socket"
	"rentChat/internal/msgs"
	"rentChat/internal/services"
	"rentChat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// SocketChatHandler relays live conversation events. Clients attach to one
// conversation per connection; events fan out through a redis channel so
// every instance sees sends and read receipts regardless of which instance
// handled the write.
type SocketChatHandler struct {
	mu          sync.Mutex
	ctx         context.Context
	upgrader    websocket.Upgrader
	hub         *models.SocketHub
	authService *services.AuthenticationService
	chatService *services.ChatService
}

func NewSocketChatHandler(
	redis *redis.Client,
	ctx context.Context,
	authService *services.AuthenticationService,
	chatService *services.ChatService,
) *SocketChatHandler {
	return &SocketChatHandler{
		ctx:         ctx,
		authService: authService,
		chatService: chatService,
		hub: &models.SocketHub{
			Conversations: make(map[uint][]*models.SocketClient),
			Redis:         redis,
			Mu:            sync.Mutex{},
		},
	}
}

func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	userInfo, err := utils.VerifyToken(jwtToken, utils.GetJwtKey())
	if err != nil || userInfo.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	conversationId := ctx.Query("conversationId")
	conversationIdInt, err := strconv.Atoi(conversationId)
	if err != nil || conversationIdInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidConversationId},
		})
		return
	}
	conversationIdUInt := uint(conversationIdInt)

	if !sch.chatService.CheckConversationExists(conversationIdUInt) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrConversationNotFound},
		})
		return
	}
	if !sch.chatService.CheckUserInConversation(userInfo.ID, conversationIdUInt) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrNotConversationMember},
		})
		return
	}

	sch.HandleConnections(ctx, userInfo, conversationIdUInt)
}

func (sch *SocketChatHandler) StartSocket() {
	sch.InitializeSocketUpgrader()
	go sch.HandleRedisMessages()
}

func (sch *SocketChatHandler) InitializeSocketUpgrader() {
	sch.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func (sch *SocketChatHandler) HandleConnections(ctx *gin.Context, userInfo *models.Claims, conversationId uint) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}(ws)

	ws.SetCloseHandler(func(code int, text string) error {
		sch.removeClientFromConversation(userInfo.ID, conversationId)
		return nil
	})

	sch.addClientToConversation(userInfo.ID, conversationId, ws)
	sch.readClientEvents(ws, userInfo, conversationId)
}

func (sch *SocketChatHandler) addClientToConversation(userId uint, conversationId uint, ws *websocket.Conn) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	for _, client := range sch.hub.Conversations[conversationId] {
		if client.UserId == userId {
			client.Conn = ws
			return
		}
	}
	sch.hub.Conversations[conversationId] = append(sch.hub.Conversations[conversationId], &models.SocketClient{
		Conn:   ws,
		UserId: userId,
	})
}

func (sch *SocketChatHandler) readClientEvents(ws *websocket.Conn, userInfo *models.Claims, conversationId uint) {
	for {
		var event socketModels.SocketEvent
		err := ws.ReadJSON(&event)
		if err != nil {
			log.Printf("Error reading json: %v", err)
			sch.removeClientFromConversation(userInfo.ID, conversationId)
			break
		}

		event.ConversationID = conversationId

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			if handleErrs := sch.handleSendMessageEvent(event.Payload, userInfo, conversationId); len(handleErrs) > 0 {
				log.Printf("Error while handling send message event: %v", handleErrs)
			}
		case enums.SOCKET_EVENT_SEEN_MESSAGE:
			if handleErrs := sch.handleSeenMessageEvent(userInfo, conversationId); len(handleErrs) > 0 {
				log.Printf("Error while handling seen message event: %v", handleErrs)
			}
		case enums.SOCKET_EVENT_IS_TYPING:
			if handleErrs := sch.handleIsTypingEvent(event.Payload, conversationId); len(handleErrs) > 0 {
				log.Printf("Error while handling is typing event: %v", handleErrs)
			}
		default:
			log.Printf("Unknown event: %v", event.Event)
		}
	}
}

// handleSendMessageEvent goes through the chat façade so socket sends get
// the same masking, receiver resolution and unread bookkeeping as REST ones.
func (sch *SocketChatHandler) handleSendMessageEvent(payload json.RawMessage, userInfo *models.Claims, conversationId uint) []error {
	var errorList []error
	var messageRequest models.MessageRequest
	if err := json.Unmarshal(payload, &messageRequest); err != nil {
		errorList = append(errorList, errs.ErrInvalidRequest)
		return errorList
	}

	session, sessionErrs := sch.sessionForUser(userInfo.ID)
	if len(sessionErrs) > 0 {
		return sessionErrs
	}

	savedMessage, sendErrs := sch.chatService.SendMessage(session, conversationId, messageRequest.Content)
	if len(sendErrs) > 0 {
		return sendErrs
	}

	return sch.publishEvent(enums.SOCKET_EVENT_SEND_MESSAGE, conversationId, savedMessage)
}

func (sch *SocketChatHandler) handleSeenMessageEvent(userInfo *models.Claims, conversationId uint) []error {
	session, sessionErrs := sch.sessionForUser(userInfo.ID)
	if len(sessionErrs) > 0 {
		return sessionErrs
	}

	sch.chatService.MarkAsRead(session, conversationId)

	return sch.publishEvent(enums.SOCKET_EVENT_SEEN_MESSAGE, conversationId, socketModels.SeenMessagePayload{
		SeenerID: userInfo.ID,
	})
}

func (sch *SocketChatHandler) handleIsTypingEvent(payload json.RawMessage, conversationId uint) []error {
	var errorList []error
	var isTypingPayload socketModels.IsTypingPayload
	if err := json.Unmarshal(payload, &isTypingPayload); err != nil {
		errorList = append(errorList, errs.ErrInvalidRequest)
		return errorList
	}
	return sch.publishEvent(enums.SOCKET_EVENT_IS_TYPING, conversationId, isTypingPayload)
}

func (sch *SocketChatHandler) sessionForUser(userID uint) (*models.ChatSession, []error) {
	user, userErrs := sch.authService.GetSingleUser(userID)
	if len(userErrs) > 0 {
		return nil, userErrs
	}
	return sch.chatService.SessionFor(user.ToUserResponse()), nil
}

func (sch *SocketChatHandler) publishEvent(event string, conversationId uint, payload any) []error {
	var errorList []error
	redisEvent := redisModels.RedisPublishedMessage{
		Event:          event,
		ConversationID: conversationId,
		Payload:        payload,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		errorList = append(errorList, err)
		return errorList
	}
	if err := sch.PublishMessage(sch.hub.Redis, redisModels.REDIS_CHANNEL_CHAT, jsonEvent); err != nil {
		errorList = append(errorList, err)
		return errorList
	}
	return nil
}

func (sch *SocketChatHandler) removeClientFromConversation(userId uint, conversationId uint) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	for i, client := range sch.hub.Conversations[conversationId] {
		if client.UserId == userId {
			sch.hub.Conversations[conversationId] = append(sch.hub.Conversations[conversationId][:i], sch.hub.Conversations[conversationId][i+1:]...)
			break
		}
	}
	if len(sch.hub.Conversations[conversationId]) == 0 {
		delete(sch.hub.Conversations, conversationId)
	}
}

func (sch *SocketChatHandler) HandleRedisMessages() {
	ch := sch.SubscribeToChannel(sch.hub.Redis, redisModels.REDIS_CHANNEL_CHAT)
	for msg := range ch {
		var redisMessage redisModels.RedisPublishedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMessage); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}
		sch.BroadcastToConversation(redisMessage)
	}
}

func (sch *SocketChatHandler) BroadcastToConversation(redisMessage redisModels.RedisPublishedMessage) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	clients := sch.hub.Conversations[redisMessage.ConversationID]
	for i := 0; i < len(clients); i++ {
		client := clients[i]
		if err := client.Conn.WriteJSON(redisMessage); err != nil {
			log.Printf("Error writing json: %v", err)
			_ = client.Conn.Close()
			clients = append(clients[:i], clients[i+1:]...)
			i--
		}
	}
	if len(clients) == 0 {
		delete(sch.hub.Conversations, redisMessage.ConversationID)
	} else {
		sch.hub.Conversations[redisMessage.ConversationID] = clients
	}
}

func (sch *SocketChatHandler) PublishMessage(redis *redis.Client, channel string, message []byte) error {
	return redis.Publish(sch.ctx, channel, message).Err()
}

func (sch *SocketChatHandler) SubscribeToChannel(redis *redis.Client, channel string) <-chan *redis.Message {
	pubsub := redis.Subscribe(sch.ctx, channel)
	_, err := pubsub.Receive(sch.ctx)
	if err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	return pubsub.Channel()
}

func (sch *SocketChatHandler) CloseAllConnections() {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	for conversationId, clients := range sch.hub.Conversations {
		for _, client := range clients {
			if err := client.Conn.Close(); err != nil {
				log.Printf("Error closing connection: %v", err)
			}
		}
		delete(sch.hub.Conversations, conversationId)
	}
}
