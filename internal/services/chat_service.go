package services

import (
	"log"
	"sort"
	"sync"
	"time"

	"rentChat/internal/enums"
	"rentChat/internal/errs"
	"rentChat/internal/masking"
	"rentChat/internal/models"
	"rentChat/internal/repositories"
	"rentChat/internal/validators"
)

// ChatService is the messaging façade the delivery layer consumes. It owns
// one in-memory ChatSession per signed-in user; the database stays the
// source of truth and every projection mutation happens only after the
// corresponding write has succeeded.
type ChatService struct {
	convRepo *repositories.ConversationRepository
	msgRepo  *repositories.MessageRepository
	mu       sync.Mutex
	sessions map[uint]*models.ChatSession
}

func NewChatService(
	convRepo *repositories.ConversationRepository,
	msgRepo *repositories.MessageRepository,
) *ChatService {
	return &ChatService{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		sessions: make(map[uint]*models.ChatSession),
	}
}

// SessionFor returns the session for the user, loading it on first access.
func (cs *ChatService) SessionFor(user *models.UserResponse) *models.ChatSession {
	cs.mu.Lock()
	session, ok := cs.sessions[user.ID]
	if !ok {
		session = models.NewChatSession(user)
		cs.sessions[user.ID] = session
	}
	cs.mu.Unlock()

	if !ok {
		cs.load(session)
	}
	return session
}

func (cs *ChatService) GetSession(userID uint) *models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.sessions[userID]
}

// CloseSession drops the projection on sign-out.
func (cs *ChatService) CloseSession(userID uint) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.sessions, userID)
}

// load fetches the user's conversations, then all of their messages in one
// batch, and groups them by conversation. Store failures are logged and the
// session still settles in Ready with whatever was loaded, so the client
// renders an empty list instead of hanging on an error.
func (cs *ChatService) load(session *models.ChatSession) {
	session.Mu.Lock()
	session.State = models.SessionLoading
	userID := session.User.ID
	session.Mu.Unlock()

	conversations, convErrs := cs.convRepo.ListForUser(userID)
	if len(convErrs) > 0 {
		log.Printf("Failed to load conversations for user %d: %v", userID, convErrs)
		conversations = nil
	}

	conversationIDs := make([]uint, 0, len(conversations))
	for _, conversation := range conversations {
		conversationIDs = append(conversationIDs, conversation.ID)
	}

	messages, msgErrs := cs.msgRepo.ListByConversations(conversationIDs)
	if len(msgErrs) > 0 {
		log.Printf("Failed to load messages for user %d: %v", userID, msgErrs)
		messages = nil
	}

	grouped := make(map[uint][]models.Message)
	for _, message := range messages {
		grouped[message.ConversationID] = append(grouped[message.ConversationID], message)
	}

	session.Mu.Lock()
	session.Conversations = make([]*models.Conversation, 0, len(conversations))
	for i := range conversations {
		session.Conversations = append(session.Conversations, &conversations[i])
	}
	session.Messages = grouped
	session.State = models.SessionReady
	session.Mu.Unlock()
}

// CreateOrGetConversation returns the existing conversation for the
// (property, tenant) pair or creates one with the property and party
// snapshots. Only tenants start conversations.
func (cs *ChatService) CreateOrGetConversation(
	session *models.ChatSession,
	request *models.StartConversationRequestBody,
	landlord *models.UserResponse,
) (*models.Conversation, []error) {
	var errorList []error

	if session == nil || session.User == nil {
		errorList = append(errorList, errs.ErrNotAuthenticated)
		return nil, errorList
	}
	if session.User.Role != enums.ROLE_TENANT {
		errorList = append(errorList, errs.ErrOnlyTenantsCanStart)
		return nil, errorList
	}
	if landlord == nil || landlord.Role != enums.ROLE_LANDLORD {
		errorList = append(errorList, errs.ErrInvalidRole)
		return nil, errorList
	}
	if landlord.ID == session.User.ID {
		errorList = append(errorList, errs.ErrSelfConversation)
		return nil, errorList
	}

	existing, findErr := cs.convRepo.FindByPropertyAndTenant(request.PropertyID, session.User.ID)
	if findErr != nil {
		errorList = append(errorList, findErr)
		return nil, errorList
	}
	if existing != nil {
		return existing, nil
	}

	conversation := &models.Conversation{
		PropertyID:    request.PropertyID,
		PropertyTitle: request.PropertyTitle,
		PropertyImage: request.PropertyImage,
		PropertyPrice: request.PropertyPrice,
		TenantID:      session.User.ID,
		TenantName:    session.User.FullName(),
		TenantPhoto:   session.User.ProfilePhoto,
		LandlordID:    landlord.ID,
		LandlordName:  landlord.FullName(),
		LandlordPhoto: landlord.ProfilePhoto,
	}

	created, createErrs := cs.convRepo.Create(conversation)
	if len(createErrs) > 0 {
		return nil, createErrs
	}

	session.Mu.Lock()
	session.Conversations = append([]*models.Conversation{created}, session.Conversations...)
	session.Mu.Unlock()

	// The landlord may already hold a live session; surface the new
	// conversation there right away instead of waiting for the first message.
	if landlordSession := cs.GetSession(landlord.ID); landlordSession != nil {
		if cs.findLoadedConversation(landlordSession, created.ID) == nil {
			copied := *created
			landlordSession.Mu.Lock()
			landlordSession.Conversations = append([]*models.Conversation{&copied}, landlordSession.Conversations...)
			landlordSession.Mu.Unlock()
		}
	}

	return created, nil
}

// SendMessage masks the content, appends it addressed to the other party of
// the conversation and refreshes the conversation preview. The projection is
// touched only after both writes succeed.
func (cs *ChatService) SendMessage(session *models.ChatSession, conversationID uint, content string) (*models.Message, []error) {
	var errorList []error

	if session == nil || session.User == nil {
		errorList = append(errorList, errs.ErrNotAuthenticated)
		return nil, errorList
	}

	if validationErrs := validators.ValidateMessageContent(content); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	conversation := cs.findLoadedConversation(session, conversationID)
	if conversation == nil {
		errorList = append(errorList, errs.ErrConversationNotFound)
		return nil, errorList
	}

	receiverID, ok := conversation.OtherParty(session.User.ID)
	if !ok {
		errorList = append(errorList, errs.ErrNotConversationMember)
		return nil, errorList
	}

	maskedContent := masking.Mask(content)

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       session.User.ID,
		ReceiverID:     receiverID,
		Content:        maskedContent,
	}

	saved, appendErrs := cs.msgRepo.Append(message)
	if len(appendErrs) > 0 {
		return nil, appendErrs
	}

	if updateErrs := cs.convRepo.UpdateLastMessage(conversationID, maskedContent, saved.CreatedAt); len(updateErrs) > 0 {
		return nil, updateErrs
	}

	cs.applyMessageToSession(session, conversation, saved)

	// The other party may hold a live session of their own; keep it in sync
	// so their unread count moves without a reload.
	if receiverSession := cs.GetSession(receiverID); receiverSession != nil {
		receiverConversation := cs.findLoadedConversation(receiverSession, conversationID)
		if receiverConversation == nil {
			copied := *conversation
			receiverSession.Mu.Lock()
			receiverSession.Conversations = append([]*models.Conversation{&copied}, receiverSession.Conversations...)
			receiverSession.Mu.Unlock()
			receiverConversation = &copied
		}
		cs.applyMessageToSession(receiverSession, receiverConversation, saved)
	}

	return saved, nil
}

// applyMessageToSession updates the thread and preview only; unread counts
// shown to a viewer are derived from the thread, never from the projection's
// conversation copy.
func (cs *ChatService) applyMessageToSession(session *models.ChatSession, conversation *models.Conversation, message *models.Message) {
	session.Mu.Lock()
	session.Messages[message.ConversationID] = append(session.Messages[message.ConversationID], *message)
	lastMessageAt := message.CreatedAt
	conversation.LastMessage = message.Content
	conversation.LastMessageAt = &lastMessageAt
	session.Mu.Unlock()
}

// MarkAsRead flips every message addressed to the session user in the
// conversation and resets the unread counter. Read state is best effort:
// store failures are logged and swallowed, and a missing user is a no-op.
func (cs *ChatService) MarkAsRead(session *models.ChatSession, conversationID uint) {
	if session == nil || session.User == nil {
		return
	}

	conversation := cs.findLoadedConversation(session, conversationID)
	if conversation == nil {
		log.Printf("MarkAsRead: conversation %d not loaded", conversationID)
		return
	}

	userID := session.User.ID
	if markErrs := cs.msgRepo.MarkRead(conversationID, userID); len(markErrs) > 0 {
		log.Printf("Failed to mark messages read in conversation %d: %v", conversationID, markErrs)
		return
	}
	if resetErrs := cs.convRepo.ResetUnread(conversationID); len(resetErrs) > 0 {
		log.Printf("Failed to reset unread counter for conversation %d: %v", conversationID, resetErrs)
	}

	cs.applyReadToSession(session, conversation, userID)

	// Reflect the read receipts in the sender's live session, if any.
	if otherID, ok := conversation.OtherParty(userID); ok {
		if otherSession := cs.GetSession(otherID); otherSession != nil {
			if otherConversation := cs.findLoadedConversation(otherSession, conversationID); otherConversation != nil {
				cs.applyReadToSession(otherSession, otherConversation, userID)
			}
		}
	}
}

func (cs *ChatService) applyReadToSession(session *models.ChatSession, conversation *models.Conversation, readerID uint) {
	session.Mu.Lock()
	thread := session.Messages[conversation.ID]
	for i := range thread {
		if thread[i].ReceiverID == readerID {
			thread[i].Read = true
		}
	}
	session.Mu.Unlock()
}

// GetConversationMessages returns the loaded thread in creation order, or an
// empty slice while the session is still loading.
func (cs *ChatService) GetConversationMessages(session *models.ChatSession, conversationID uint) []models.Message {
	if session == nil || session.IsLoading() {
		return []models.Message{}
	}

	session.Mu.RLock()
	defer session.Mu.RUnlock()
	thread := session.Messages[conversationID]
	result := make([]models.Message, len(thread))
	copy(result, thread)
	return result
}

// GetUserConversations recomputes the list view on every access: the session
// user's conversations sorted by last activity descending, each with the
// unread count as seen by that user.
func (cs *ChatService) GetUserConversations(session *models.ChatSession) []models.ConversationResponse {
	if session == nil || session.User == nil || session.IsLoading() {
		return []models.ConversationResponse{}
	}

	session.Mu.RLock()
	defer session.Mu.RUnlock()

	userID := session.User.ID
	responses := make([]models.ConversationResponse, 0, len(session.Conversations))
	for _, conversation := range session.Conversations {
		if !conversation.HasMember(userID) {
			continue
		}
		responses = append(responses, conversation.ToConversationResponse(
			cs.unreadInThread(session.Messages[conversation.ID], userID),
		))
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return lastActivity(&responses[i]).After(lastActivity(&responses[j]))
	})
	return responses
}

// TotalUnreadCount sums unread messages addressed to the session user over
// all loaded conversations.
func (cs *ChatService) TotalUnreadCount(session *models.ChatSession) int {
	if session == nil || session.User == nil || session.IsLoading() {
		return 0
	}

	session.Mu.RLock()
	defer session.Mu.RUnlock()

	total := 0
	for _, thread := range session.Messages {
		total += cs.unreadInThread(thread, session.User.ID)
	}
	return total
}

func (cs *ChatService) CheckConversationExists(conversationID uint) bool {
	return cs.convRepo.CheckConversationExists(conversationID)
}

func (cs *ChatService) CheckUserInConversation(userID, conversationID uint) bool {
	conversation, errorList := cs.convRepo.GetConversationById(conversationID)
	if len(errorList) > 0 || conversation == nil {
		return false
	}
	return conversation.HasMember(userID)
}

func (cs *ChatService) findLoadedConversation(session *models.ChatSession, conversationID uint) *models.Conversation {
	session.Mu.RLock()
	defer session.Mu.RUnlock()
	for _, conversation := range session.Conversations {
		if conversation.ID == conversationID {
			return conversation
		}
	}
	return nil
}

func (cs *ChatService) unreadInThread(thread []models.Message, userID uint) int {
	count := 0
	for _, message := range thread {
		if message.ReceiverID == userID && !message.Read {
			count++
		}
	}
	return count
}

func lastActivity(conversation *models.ConversationResponse) time.Time {
	if conversation.LastMessageAt != nil {
		return *conversation.LastMessageAt
	}
	return conversation.CreatedAt
}
