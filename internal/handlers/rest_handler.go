package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"rentChat/internal/enums"
	"rentChat/internal/errs"
	"rentChat/internal/models"
	redisModels "rentChat/internal/models/redis"
	socketModels "rentChat/internal/models/socket"
	"rentChat/internal/msgs"
	"rentChat/internal/services"
	"rentChat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RestHandler struct {
	ctx                context.Context
	redis              *redis.Client
	authService        *services.AuthenticationService
	chatService        *services.ChatService
	fileManagerService *services.FileManagerService
}

func NewRestHandler(
	ctx context.Context,
	redis *redis.Client,
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	fileManagerService *services.FileManagerService,
) *RestHandler {
	return &RestHandler{
		ctx:                ctx,
		redis:              redis,
		authService:        authService,
		chatService:        chatService,
		fileManagerService: fileManagerService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a tenant or landlord account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /register [post]
func (rh *RestHandler) Register(ctx *gin.Context) {
	var errors []error

	var user models.User
	err := ctx.BindJSON(&user)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	_, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errors = append(errors, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
	})
}

// Login godoc
// @Summary      Login user to account
// @Description  Issues a JWT and boots the user's chat session
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var errors []error

	var loginData models.LoginRequestBody
	err := ctx.BindJSON(&loginData)
	if err != nil {
		log.Println("Error login data json binding:", err)
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	// Sign-in is the chat session's init point.
	rh.chatService.SessionFor(loginResponse.User.ToUserResponse())

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

// Logout tears down the chat session projection for the current user.
func (rh *RestHandler) Logout(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	rh.chatService.CloseSession(userID)

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) GetAllUsersWithPagination(ctx *gin.Context) {
	page := ctx.Query("page")
	size := ctx.Query("size")

	pageInt, err := strconv.Atoi(page)
	if err != nil || pageInt < 1 {
		pageInt = 1
	}

	sizeInt, err := strconv.Atoi(size)
	if err != nil || sizeInt < 1 {
		sizeInt = 10
	}

	response, responseErrs := rh.authService.GetAllUsersWithPagination(pageInt, sizeInt)
	if len(responseErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  responseErrs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) GetSingleUser(ctx *gin.Context) {
	id := ctx.Param("id")

	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	user, userErrs := rh.authService.GetSingleUser(uint(idInt))
	if len(userErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  userErrs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user.ToUserResponse(),
	})
}

func (rh *RestHandler) UpdateUser(ctx *gin.Context) {
	var errors []error
	var updateUserRequest models.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&updateUserRequest); err != nil {
		errors = append(errors, errs.ErrInvalidRequest)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		errors = append(errors, errs.ErrUnauthorized)
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	updateUserRequest.ID = userID

	updatedUser, updateErrs := rh.authService.UpdateUser(&updateUserRequest)
	if len(updateErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  updateErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    updatedUser.ToProfileResponse(),
	})
}

func (rh *RestHandler) UploadUserProfilePhoto(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		log.Println("User id not found")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	file, err := ctx.FormFile("profile_photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrNoFileUploaded},
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToOpenUploadedFile},
		})
		return
	}
	defer src.Close()

	fileExt := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("user_profile_photo_%s%s", strconv.Itoa(int(userID)), fileExt)

	url, err := rh.fileManagerService.UploadUserProfilePhoto(fileName, src, file.Size, file.Header.Get("Content-Type"), enums.FILE_BUCKET_USER_PROFILE)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToUploadFile},
		})
		return
	}

	if updateErrs := rh.authService.UpdateUserProfilePhoto(userID, url); updateErrs != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnableToUpdateProfilePhoto},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    url,
	})
}

// StartConversation godoc
// @Summary      Start or reuse a conversation
// @Description  Idempotent on (property, tenant): returns the existing conversation when one exists
// @Tags         chat
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /conversations [post]
func (rh *RestHandler) StartConversation(ctx *gin.Context) {
	var errors []error

	var request models.StartConversationRequestBody
	if err := ctx.BindJSON(&request); err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	// Fast-path guard on the token's role claim before touching the session.
	if utils.GetUserRoleFromContext(ctx) != enums.ROLE_TENANT {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgFailedToStartConversation,
			Errors:  []error{errs.ErrOnlyTenantsCanStart},
		})
		return
	}

	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	landlord, landlordErrs := rh.authService.GetSingleUser(request.LandlordID)
	if len(landlordErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgFailedToStartConversation,
			Errors:  landlordErrs,
		})
		return
	}

	conversation, createErrs := rh.chatService.CreateOrGetConversation(session, &request, landlord.ToUserResponse())
	if len(createErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgFailedToStartConversation,
			Errors:  createErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgConversationStarted,
		Data:    conversation.ToConversationResponse(0),
	})
}

// GetMyConversations returns the current user's conversation list, most
// recently active first, with per-conversation and total unread counts.
func (rh *RestHandler) GetMyConversations(ctx *gin.Context) {
	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data: models.ConversationListResponse{
			Conversations: rh.chatService.GetUserConversations(session),
			TotalUnread:   rh.chatService.TotalUnreadCount(session),
		},
	})
}

func (rh *RestHandler) GetUnreadCount(ctx *gin.Context) {
	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data: models.UnreadCountResponse{
			TotalUnread: rh.chatService.TotalUnreadCount(session),
		},
	})
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Masks sensitive spans, stores the message and updates the conversation preview
// @Tags         chat
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /messages [post]
func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	var messageRequest models.MessageRequest
	if err := ctx.ShouldBindJSON(&messageRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequest},
		})
		return
	}

	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	message, sendErrs := rh.chatService.SendMessage(session, messageRequest.ConversationID, messageRequest.Content)
	if len(sendErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  sendErrs,
		})
		return
	}

	rh.publishChatEvent(enums.SOCKET_EVENT_SEND_MESSAGE, message.ConversationID, message)

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMessageSent,
		Data:    message,
	})
}

// GetConversationMessages serves the thread from the session projection.
func (rh *RestHandler) GetConversationMessages(ctx *gin.Context) {
	conversationID, ok := rh.conversationIdFromParam(ctx)
	if !ok {
		return
	}

	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data: models.MessageListResponse{
			Messages: rh.chatService.GetConversationMessages(session, conversationID),
		},
	})
}

// MarkConversationRead is best-effort; it always answers success to the
// client, matching the swallow-and-log policy for read state.
func (rh *RestHandler) MarkConversationRead(ctx *gin.Context) {
	conversationID, ok := rh.conversationIdFromParam(ctx)
	if !ok {
		return
	}

	session, sessionErrs := rh.currentSession(ctx)
	if len(sessionErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  sessionErrs,
		})
		return
	}

	rh.chatService.MarkAsRead(session, conversationID)

	rh.publishChatEvent(enums.SOCKET_EVENT_SEEN_MESSAGE, conversationID, socketModels.SeenMessagePayload{
		SeenerID: session.User.ID,
	})

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgConversationMarkedAsRead,
	})
}

func (rh *RestHandler) currentSession(ctx *gin.Context) (*models.ChatSession, []error) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		return nil, []error{errs.ErrNotAuthenticated}
	}
	user, userErrs := rh.authService.GetSingleUser(userID)
	if len(userErrs) > 0 {
		return nil, userErrs
	}
	return rh.chatService.SessionFor(user.ToUserResponse()), nil
}

func (rh *RestHandler) conversationIdFromParam(ctx *gin.Context) (uint, bool) {
	id := ctx.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidConversationId},
		})
		return 0, false
	}
	return uint(idInt), true
}

func (rh *RestHandler) publishChatEvent(event string, conversationID uint, payload any) {
	redisEvent := redisModels.RedisPublishedMessage{
		Event:          event,
		ConversationID: conversationID,
		Payload:        payload,
	}
	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		log.Printf("Error marshalling chat event: %v", err)
		return
	}
	if err := rh.redis.Publish(rh.ctx, redisModels.REDIS_CHANNEL_CHAT, jsonEvent).Err(); err != nil {
		log.Printf("Error publishing chat event: %v", err)
	}
}
