package memory

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// Store keeps per-conversation message history. Implementations must be safe
// for concurrent use and must apply appends to the same conversation in the
// order callers issue them.
type Store interface {
	// History returns an independent copy of the conversation so far.
	// Unknown conversation ids behave as empty conversations.
	History(conversationID string) []*schema.Message
	// Append adds a message to the end of the conversation, creating the
	// conversation on first use.
	Append(conversationID string, message *schema.Message)
}

// InMemoryStore holds conversations for the lifetime of the process.
// Each conversation has its own lock so unrelated sessions never contend.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*conversation
}

type conversation struct {
	mu       sync.Mutex
	messages []*schema.Message
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		conversations: make(map[string]*conversation),
	}
}

func (s *InMemoryStore) History(conversationID string) []*schema.Message {
	s.mu.RLock()
	c := s.conversations[conversationID]
	s.mu.RUnlock()
	if c == nil {
		return []*schema.Message{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*schema.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (s *InMemoryStore) Append(conversationID string, message *schema.Message) {
	c := s.conversation(conversationID)
	c.mu.Lock()
	c.messages = append(c.messages, message)
	c.mu.Unlock()
}

func (s *InMemoryStore) conversation(conversationID string) *conversation {
	s.mu.RLock()
	c := s.conversations[conversationID]
	s.mu.RUnlock()
	if c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c = s.conversations[conversationID]; c == nil {
		c = &conversation{}
		s.conversations[conversationID] = c
	}
	return c
}

// LastTurns trims history to the most recent maxTurns messages for use as
// model context. The stored history itself is never trimmed.
func LastTurns(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
