package store

import (
	"context"
	"sync"

	"github.com/researchkit/researcherAPI/internal/rag/conversation"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

// SessionStore maps chat ids to their conversation histories. Sessions
// are deliberately in-memory only: history is scoped to one interactive
// session and does not survive a restart.
type SessionStore interface {
	Session(ctx context.Context, chatId string) (*conversation.History, bool)
	GetOrInitSession(ctx context.Context, chatId string) *conversation.History
	ClearSession(ctx context.Context, chatId string)
}

type InMemorySessionStore struct {
	mu       *sync.RWMutex
	sessions map[string]*conversation.History
	logger   *logger_i.Logger
}

func InitSessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		mu:       new(sync.RWMutex),
		sessions: make(map[string]*conversation.History),
		logger:   logger_i.NewLogger("SessionStore"),
	}
}

func (s *InMemorySessionStore) Session(ctx context.Context, chatId string) (*conversation.History, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, found := s.sessions[chatId]
	return history, found
}

func (s *InMemorySessionStore) GetOrInitSession(ctx context.Context, chatId string) *conversation.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	if history, found := s.sessions[chatId]; found {
		return history
	}
	history := conversation.NewHistory()
	s.sessions[chatId] = history
	s.logger.Debug("Initialized new chat session", "chat Id", chatId)
	return history
}

// ClearSession resets the history to empty. The session id stays valid;
// only its turns are discarded.
func (s *InMemorySessionStore) ClearSession(ctx context.Context, chatId string) {
	s.mu.RLock()
	history, found := s.sessions[chatId]
	s.mu.RUnlock()
	if found {
		history.Clear()
	}
}
