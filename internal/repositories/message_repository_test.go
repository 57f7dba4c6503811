package repositories

import (
	"testing"

	"rentChat/internal/models"
)

func appendTestMessage(t *testing.T, repo *MessageRepository, conversationID, senderID, receiverID uint, content string) *models.Message {
	t.Helper()
	saved, errs := repo.Append(&models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
	})
	if len(errs) > 0 {
		t.Fatalf("Append failed: %v", errs)
	}
	return saved
}

func TestAppendStoresUnread(t *testing.T) {
	repo := NewMessageRepository(setupTestDb(t))

	message := &models.Message{
		ConversationID: 1,
		SenderID:       1,
		ReceiverID:     2,
		Content:        "hello",
		Read:           true,
	}
	saved, errs := repo.Append(message)
	if len(errs) > 0 {
		t.Fatalf("Append failed: %v", errs)
	}
	if saved.ID == 0 {
		t.Fatal("expected a generated id")
	}
	if saved.Read {
		t.Error("new messages must be stored unread")
	}
}

func TestListByConversationOrder(t *testing.T) {
	repo := NewMessageRepository(setupTestDb(t))

	first := appendTestMessage(t, repo, 1, 1, 2, "first")
	second := appendTestMessage(t, repo, 1, 2, 1, "second")
	appendTestMessage(t, repo, 2, 1, 3, "other thread")

	messages, errs := repo.ListByConversation(1)
	if len(errs) > 0 {
		t.Fatalf("ListByConversation failed: %v", errs)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != first.ID || messages[1].ID != second.ID {
		t.Errorf("wrong order: got %d, %d", messages[0].ID, messages[1].ID)
	}
}

func TestListByConversationsBatch(t *testing.T) {
	repo := NewMessageRepository(setupTestDb(t))

	appendTestMessage(t, repo, 1, 1, 2, "a")
	appendTestMessage(t, repo, 2, 1, 3, "b")
	appendTestMessage(t, repo, 3, 4, 5, "c")

	messages, errs := repo.ListByConversations([]uint{1, 2})
	if len(errs) > 0 {
		t.Fatalf("ListByConversations failed: %v", errs)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	empty, errs := repo.ListByConversations(nil)
	if len(errs) > 0 {
		t.Fatalf("ListByConversations with no ids failed: %v", errs)
	}
	if len(empty) != 0 {
		t.Errorf("expected no messages for empty id list, got %d", len(empty))
	}
}

func TestMarkRead(t *testing.T) {
	repo := NewMessageRepository(setupTestDb(t))

	appendTestMessage(t, repo, 1, 1, 2, "to reader")
	appendTestMessage(t, repo, 1, 1, 2, "also to reader")
	appendTestMessage(t, repo, 1, 2, 1, "from reader")

	if errs := repo.MarkRead(1, 2); len(errs) > 0 {
		t.Fatalf("MarkRead failed: %v", errs)
	}

	messages, _ := repo.ListByConversation(1)
	for _, message := range messages {
		if message.ReceiverID == 2 && !message.Read {
			t.Errorf("message %d addressed to reader still unread", message.ID)
		}
		if message.ReceiverID == 1 && message.Read {
			t.Errorf("message %d sent by reader flipped to read", message.ID)
		}
	}

	// Marking an already read or empty conversation is a no-op.
	if errs := repo.MarkRead(1, 2); len(errs) > 0 {
		t.Errorf("repeat MarkRead failed: %v", errs)
	}
	if errs := repo.MarkRead(42, 2); len(errs) > 0 {
		t.Errorf("MarkRead on missing conversation failed: %v", errs)
	}
}

func TestCountUnreadForUser(t *testing.T) {
	repo := NewMessageRepository(setupTestDb(t))

	appendTestMessage(t, repo, 1, 1, 2, "one")
	appendTestMessage(t, repo, 1, 1, 2, "two")
	appendTestMessage(t, repo, 1, 2, 1, "reply")

	count, err := repo.CountUnreadForUser(1, 2)
	if err != nil {
		t.Fatalf("CountUnreadForUser failed: %v", err)
	}
	if count != 2 {
		t.Errorf("unread count = %d, want 2", count)
	}

	if errs := repo.MarkRead(1, 2); len(errs) > 0 {
		t.Fatalf("MarkRead failed: %v", errs)
	}
	count, err = repo.CountUnreadForUser(1, 2)
	if err != nil {
		t.Fatalf("CountUnreadForUser failed: %v", err)
	}
	if count != 0 {
		t.Errorf("unread count after mark read = %d, want 0", count)
	}
}
