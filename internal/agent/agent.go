// Package agent contains the role-scoped agents that call the chat model.
// Each agent is stateless; session history is owned by the caller.
package agent

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Agent is one unit of LLM-backed behavior. Kind identifies the agent in
// logs; it is never used for dispatch.
type Agent interface {
	Kind() string
	Execute(ctx context.Context, task string, history []*schema.Message) (string, error)
}
