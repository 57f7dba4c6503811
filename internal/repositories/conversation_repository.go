package repositories

import (
	"errors"
	"time"

	"rentChat/internal/errs"
	"rentChat/internal/models"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

// FindByPropertyAndTenant is the idempotency lookup for conversation
// creation. Returns nil without error when no conversation exists yet.
func (cr *ConversationRepository) FindByPropertyAndTenant(propertyID, tenantID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	result := cr.db.
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewPersistenceError("find conversation", result.Error)
	}
	return &conversation, nil
}

// Create persists a new conversation with an empty last-message preview and
// a zero unread counter. The composite unique index on (property_id,
// tenant_id) closes the check-then-create race: a duplicate-key conflict is
// resolved by returning the row the concurrent writer created.
func (cr *ConversationRepository) Create(conversation *models.Conversation) (*models.Conversation, []error) {
	var errorList []error

	conversation.LastMessage = ""
	conversation.LastMessageAt = nil
	conversation.UnreadCount = 0

	if err := cr.db.Create(conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := cr.FindByPropertyAndTenant(conversation.PropertyID, conversation.TenantID)
			if findErr != nil {
				errorList = append(errorList, findErr)
				return nil, errorList
			}
			if existing != nil {
				return existing, nil
			}
		}
		errorList = append(errorList, errs.NewPersistenceError("create conversation", err))
		return nil, errorList
	}
	return conversation, nil
}

// ListForUser returns every conversation where the user is either the tenant
// or the landlord party, most recently active first.
func (cr *ConversationRepository) ListForUser(userID uint) ([]models.Conversation, []error) {
	var errorList []error
	var conversations []models.Conversation

	if err := cr.db.
		Where("tenant_id = ? OR landlord_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("list conversations", err))
		return nil, errorList
	}
	return conversations, nil
}

func (cr *ConversationRepository) GetConversationById(conversationID uint) (*models.Conversation, []error) {
	var errorList []error
	var conversation models.Conversation

	result := cr.db.Where("id = ?", conversationID).First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			errorList = append(errorList, errs.ErrConversationNotFound)
			return nil, errorList
		}
		errorList = append(errorList, errs.NewPersistenceError("get conversation", result.Error))
		return nil, errorList
	}
	return &conversation, nil
}

// UpdateLastMessage refreshes the denormalized preview fields after a send
// and bumps the unread counter in the same transaction.
func (cr *ConversationRepository) UpdateLastMessage(conversationID uint, preview string, at time.Time) []error {
	var errorList []error
	transactionErr := cr.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Updates(map[string]interface{}{
				"last_message":    preview,
				"last_message_at": at,
				"unread_count":    gorm.Expr("unread_count + 1"),
				"updated_at":      time.Now(),
			}).Error
	})
	if transactionErr != nil {
		errorList = append(errorList, errs.NewPersistenceError("update last message", transactionErr))
		return errorList
	}
	return nil
}

func (cr *ConversationRepository) ResetUnread(conversationID uint) []error {
	var errorList []error
	if err := cr.db.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("unread_count", 0).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("reset unread", err))
		return errorList
	}
	return nil
}

func (cr *ConversationRepository) CheckConversationExists(conversationID uint) bool {
	var count int64
	cr.db.Model(&models.Conversation{}).Where("id = ?", conversationID).Count(&count)
	return count > 0
}
