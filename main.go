package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"clanker/internal/agent"
	"clanker/internal/config"
	"clanker/internal/directory"
	"clanker/internal/llm"
	"clanker/internal/logger"
	"clanker/internal/memory"
	"clanker/internal/notify"
	"clanker/internal/search"
	"clanker/internal/server"
	"clanker/internal/service"
	"clanker/internal/vapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clanker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	yamlCfg, err := config.LoadYAML("config.yaml")
	if err != nil {
		return err
	}
	yamlCfg.Apply(cfg)

	if err := logger.InitLogger(cfg.Log); err != nil {
		return err
	}
	log := logger.GetLogger()

	chatModel, err := llm.NewChatModel(ctx, llm.ModelConfig{
		Provider:    cfg.Model.Provider,
		APIKey:      cfg.Model.APIKey,
		BaseURL:     cfg.Model.BaseURL,
		Model:       cfg.Model.Name,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
		Timeout:     cfg.Model.ModelTimeout(),
	})
	if err != nil {
		return err
	}
	responder := llm.NewChatResponder(chatModel, cfg.Model.ModelTimeout())

	searchKey := cfg.Search.APIKey
	if searchKey == "" {
		searchKey = cfg.Model.APIKey
	}
	searcher := search.NewClient(search.Config{
		APIKey:  searchKey,
		BaseURL: cfg.Search.BaseURL,
		Model:   cfg.Search.Model,
		Timeout: cfg.Search.SearchTimeout(),
	})

	parser := directory.NewParser()
	contextTurns := 0
	if yamlCfg != nil {
		if len(yamlCfg.Parser.Aliases) > 0 {
			parser = directory.NewParserWithAliases(yamlCfg.Parser.Aliases)
		}
		contextTurns = yamlCfg.Conversation.ContextTurns
	}

	svc := service.New(service.Options{
		Composer:  agent.NewQueryComposer(responder),
		Cleaner:   agent.NewResultCleaner(responder),
		Converser: agent.NewConversation(responder),
		Searcher:  searcher,
		Parser:    parser,
		Memory:    memory.NewInMemoryStore(),
		Location: service.Location{
			City:    cfg.Search.City,
			Region:  cfg.Search.Region,
			Country: cfg.Search.Country,
		},
		ContextTurns: contextTurns,
		Logger:       *log,
	})

	var vapiClient *vapi.Client
	if cfg.Vapi.APIKey != "" {
		vapiClient = vapi.NewClient(cfg.Vapi.BaseURL, cfg.Vapi.APIKey)
	} else {
		log.Warn().Msg("VAPI_API_KEY is not set; vapi routes disabled")
	}

	var notifier notify.Notifier
	if cfg.SMS.AccountSID != "" && cfg.SMS.AuthToken != "" && cfg.SMS.FromNumber != "" {
		notifier = notify.NewTwilio(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber)
	}

	srv := server.New(server.Options{
		Service:       svc,
		VapiClient:    vapiClient,
		Notifier:      notifier,
		PublicURL:     cfg.Vapi.PublicURL,
		PhoneNumberID: cfg.Vapi.PhoneNumberID,
		Logger:        *log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("model_provider", cfg.Model.Provider).
		Str("search_city", cfg.Search.City).
		Msg("starting clanker")

	return http.ListenAndServe(addr, srv.Routes())
}
