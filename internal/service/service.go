// Package service orchestrates the agent pipeline and conversation flow.
package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clanker/internal/agent"
	"clanker/internal/directory"
	"clanker/internal/memory"
)

// Searcher is the web-search capability the pipeline consumes.
type Searcher interface {
	Search(ctx context.Context, query, city, region, country string) (string, error)
}

// Location is the approximate-location hint passed to every search.
type Location struct {
	City    string
	Region  string
	Country string
}

// Service wires the agents, search capability, parser and memory into the
// two operations the HTTP layer exposes.
type Service struct {
	composer     agent.Agent
	cleaner      agent.Agent
	converser    agent.Agent
	searcher     Searcher
	parser       *directory.Parser
	memory       memory.Store
	location     Location
	contextTurns int
	log          zerolog.Logger
}

type Options struct {
	Composer     agent.Agent
	Cleaner      agent.Agent
	Converser    agent.Agent
	Searcher     Searcher
	Parser       *directory.Parser
	Memory       memory.Store
	Location     Location
	ContextTurns int
	Logger       zerolog.Logger
}

func New(opts Options) *Service {
	parser := opts.Parser
	if parser == nil {
		parser = directory.NewParser()
	}
	store := opts.Memory
	if store == nil {
		store = memory.NewInMemoryStore()
	}
	contextTurns := opts.ContextTurns
	if contextTurns <= 0 {
		contextTurns = 10
	}
	return &Service{
		composer:     opts.Composer,
		cleaner:      opts.Cleaner,
		converser:    opts.Converser,
		searcher:     opts.Searcher,
		parser:       parser,
		memory:       store,
		location:     opts.Location,
		contextTurns: contextTurns,
		log:          opts.Logger,
	}
}

// StartSearch runs the full pipeline: compose a query, search, clean, parse.
// Every stage is fail-fast; the error kinds are the stage errors unchanged.
func (s *Service) StartSearch(ctx context.Context, userTask string) (*directory.Directory, error) {
	start := time.Now()

	query, err := s.composer.Execute(ctx, userTask, nil)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("agent", s.composer.Kind()).Str("query", query).Msg("composed search query")

	raw, err := s.searcher.Search(ctx, query, s.location.City, s.location.Region, s.location.Country)
	if err != nil {
		return nil, err
	}

	cleaned, err := s.cleaner.Execute(ctx, raw, nil)
	if err != nil {
		return nil, err
	}

	dir, err := s.parser.Parse(cleaned)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("query", query).
		Int("businesses", len(dir.Businesses)).
		Dur("elapsed", time.Since(start)).
		Msg("search pipeline completed")
	return dir, nil
}

// CreateConversation starts a new conversation around a search task. The
// user task and the directory (as interchange JSON) are persisted so the
// conversation agent can refer back to them.
func (s *Service) CreateConversation(ctx context.Context, userTask string) (string, *directory.Directory, error) {
	dir, err := s.StartSearch(ctx, userTask)
	if err != nil {
		return "", nil, err
	}

	conversationID := uuid.NewString()
	summary, err := sonic.Marshal(dir)
	if err != nil {
		return "", nil, err
	}

	s.memory.Append(conversationID, schema.UserMessage(userTask))
	s.memory.Append(conversationID, schema.AssistantMessage(string(summary), nil))

	s.log.Info().Str("conversation_id", conversationID).Msg("conversation created")
	return conversationID, dir, nil
}

// Continue generates a reply in an existing conversation and records both
// sides of the exchange. Unknown ids behave as new, empty conversations.
func (s *Service) Continue(ctx context.Context, conversationID, userTask string) (string, error) {
	history := memory.LastTurns(s.memory.History(conversationID), s.contextTurns)

	reply, err := s.converser.Execute(ctx, userTask, history)
	if err != nil {
		return "", err
	}

	s.memory.Append(conversationID, schema.UserMessage(userTask))
	s.memory.Append(conversationID, schema.AssistantMessage(reply, nil))

	s.log.Debug().
		Str("agent", s.converser.Kind()).
		Str("conversation_id", conversationID).
		Int("history", len(history)).
		Msg("conversation continued")
	return reply, nil
}
