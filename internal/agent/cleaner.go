package agent

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"clanker/internal/llm"
)

// ResultCleaner normalizes raw web-search output into (expected) strict JSON.
// It makes no parsing guarantee; the directory parser validates the result.
type ResultCleaner struct {
	responder llm.Responder
}

func NewResultCleaner(responder llm.Responder) *ResultCleaner {
	return &ResultCleaner{responder: responder}
}

func (a *ResultCleaner) Kind() string {
	return "result_cleaner"
}

func (a *ResultCleaner) Execute(ctx context.Context, task string, _ []*schema.Message) (string, error) {
	prompt := strings.ReplaceAll(resultCleanerPrompt, "{results}", task)
	return a.responder.Respond(ctx, resultCleanerRole, prompt, nil)
}
