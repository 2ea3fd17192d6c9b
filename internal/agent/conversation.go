package agent

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"clanker/internal/llm"
)

// Conversation generates a reply for an ongoing dialogue. The caller is
// responsible for persisting both sides of the exchange.
type Conversation struct {
	responder llm.Responder
}

func NewConversation(responder llm.Responder) *Conversation {
	return &Conversation{responder: responder}
}

func (a *Conversation) Kind() string {
	return "conversation"
}

func (a *Conversation) Execute(ctx context.Context, task string, history []*schema.Message) (string, error) {
	return a.responder.Respond(ctx, conversationRole, task, history)
}
