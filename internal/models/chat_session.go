package models

import "sync"

type SessionState string

const (
	SessionUnloaded SessionState = "unloaded"
	SessionLoading  SessionState = "loading"
	SessionReady    SessionState = "ready"
)

// ChatSession is the in-memory projection the messaging façade keeps for one
// authenticated user. It is created on sign-in, torn down on sign-out, and
// mutated only after the corresponding database write has succeeded.
type ChatSession struct {
	Mu            sync.RWMutex
	User          *UserResponse
	State         SessionState
	Conversations []*Conversation
	Messages      map[uint][]Message
}

func NewChatSession(user *UserResponse) *ChatSession {
	return &ChatSession{
		User:     user,
		State:    SessionUnloaded,
		Messages: make(map[uint][]Message),
	}
}

// IsLoading lets list endpoints answer with empty results while the initial
// load is still in flight instead of blocking the caller.
func (session *ChatSession) IsLoading() bool {
	session.Mu.RLock()
	defer session.Mu.RUnlock()
	return session.State == SessionLoading
}
