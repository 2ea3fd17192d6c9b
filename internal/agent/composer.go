package agent

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"clanker/internal/llm"
)

// QueryComposer turns a free-text user task into a concise search query.
type QueryComposer struct {
	responder llm.Responder
}

func NewQueryComposer(responder llm.Responder) *QueryComposer {
	return &QueryComposer{responder: responder}
}

func (a *QueryComposer) Kind() string {
	return "query_composer"
}

func (a *QueryComposer) Execute(ctx context.Context, task string, _ []*schema.Message) (string, error) {
	prompt := strings.ReplaceAll(queryComposerPrompt, "{task}", task)
	out, err := a.responder.Respond(ctx, queryComposerRole, prompt, nil)
	if err != nil {
		return "", err
	}
	return sanitizeQuery(out), nil
}

// sanitizeQuery reduces model output to the bare query: first non-empty,
// non-fence line with quoting, backticks and label prefixes removed.
func sanitizeQuery(s string) string {
	s = strings.TrimSpace(s)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		s = line
		break
	}
	s = strings.Trim(s, "`\"'")
	for _, prefix := range []string{"search query:", "query:"} {
		if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	s = strings.Trim(s, "`\"'")
	return strings.Join(strings.Fields(s), " ")
}
