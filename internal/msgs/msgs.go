package msgs

const (
	MsgOperationSuccessful       = "operation successful"
	MsgOperationFailed           = "operation failed"
	MsgUserCreatedSuccessfully   = "user created successfully"
	MsgYouMustLoginFirst         = "you must login first"
	MsgConversationStarted       = "conversation started"
	MsgMessageSent               = "message sent"
	MsgConversationMarkedAsRead  = "conversation marked as read"
	MsgFailedToStartConversation = "failed to start conversation"
)
