// Package llm wraps the chat-model capability the agents depend on.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrModelUnavailable reports a transport or non-success failure from the
// chat model. Agents never retry; the caller decides what to do.
var ErrModelUnavailable = errors.New("model unavailable")

// Responder is the single capability agents need: one role-scoped response
// given a prompt and optional prior history.
type Responder interface {
	Respond(ctx context.Context, role, prompt string, history []*schema.Message) (string, error)
}

// ChatResponder adapts an eino chat model to the Responder capability.
type ChatResponder struct {
	model   model.BaseChatModel
	timeout time.Duration
}

func NewChatResponder(m model.BaseChatModel, timeout time.Duration) *ChatResponder {
	return &ChatResponder{model: m, timeout: timeout}
}

func (r *ChatResponder) Respond(ctx context.Context, role, prompt string, history []*schema.Message) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(role))
	messages = append(messages, history...)
	messages = append(messages, schema.UserMessage(prompt))

	out, err := r.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return out.Content, nil
}
