package repositories

import (
	"rentChat/internal/errs"
	"rentChat/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

// Append persists a new message as unread. Content is stored verbatim; the
// caller is responsible for masking before the write.
func (mr *MessageRepository) Append(message *models.Message) (*models.Message, []error) {
	var errorList []error
	message.Read = false
	if err := mr.db.Create(message).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("append message", err))
		return nil, errorList
	}
	return message, nil
}

// ListByConversation returns the full thread in ascending creation order.
func (mr *MessageRepository) ListByConversation(conversationID uint) ([]models.Message, []error) {
	var errorList []error
	var messages []models.Message
	if err := mr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("list messages", err))
		return nil, errorList
	}
	return messages, nil
}

// ListByConversations is the one-shot batch fetch the session load uses.
func (mr *MessageRepository) ListByConversations(conversationIDs []uint) ([]models.Message, []error) {
	var errorList []error
	var messages []models.Message
	if len(conversationIDs) == 0 {
		return messages, nil
	}
	if err := mr.db.
		Where("conversation_id IN ?", conversationIDs).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("list messages batch", err))
		return nil, errorList
	}
	return messages, nil
}

// MarkRead flips every unread message addressed to receiverID in the
// conversation. Zero affected rows is a no-op, not an error.
func (mr *MessageRepository) MarkRead(conversationID, receiverID uint) []error {
	var errorList []error
	result := mr.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversationID, receiverID, false).
		Update("read", true)
	if result.Error != nil {
		errorList = append(errorList, errs.NewPersistenceError("mark read", result.Error))
		return errorList
	}
	return nil
}

func (mr *MessageRepository) CountUnreadForUser(conversationID, userID uint) (int, error) {
	var count int64
	result := mr.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversationID, userID, false).
		Count(&count)
	if result.Error != nil {
		return 0, errs.NewPersistenceError("count unread", result.Error)
	}
	return int(count), nil
}
