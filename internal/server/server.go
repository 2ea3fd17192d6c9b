// Package server wires the service into HTTP routes.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"clanker/internal/directory"
	"clanker/internal/llm"
	"clanker/internal/notify"
	"clanker/internal/search"
	"clanker/internal/service"
	"clanker/internal/vapi"
)

type Server struct {
	svc           *service.Service
	vapiClient    *vapi.Client
	webhooks      *vapi.WebhookStore
	notifier      notify.Notifier
	publicURL     string
	phoneNumberID string
	log           zerolog.Logger
}

type Options struct {
	Service       *service.Service
	VapiClient    *vapi.Client // nil disables the vapi routes
	Notifier      notify.Notifier
	PublicURL     string
	PhoneNumberID string
	Logger        zerolog.Logger
}

func New(opts Options) *Server {
	return &Server{
		svc:           opts.Service,
		vapiClient:    opts.VapiClient,
		webhooks:      vapi.NewWebhookStore(),
		notifier:      opts.Notifier,
		publicURL:     opts.PublicURL,
		phoneNumberID: opts.PhoneNumberID,
		log:           opts.Logger,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/conversation", s.handleCreateConversation)
	mux.HandleFunc("PATCH /v1/conversation", s.handleContinueConversation)
	if s.vapiClient != nil {
		mux.HandleFunc("GET /workflows", s.handleListWorkflows)
		mux.HandleFunc("POST /trigger", s.handleTrigger)
		mux.HandleFunc("POST /webhooks/vapi", s.handleWebhook)
		mux.HandleFunc("GET /debug/last-webhook", s.handleLastWebhook)
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.UserRequest == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_request is required"})
		return
	}

	conversationID, dir, err := s.svc.CreateConversation(r.Context(), req.UserRequest)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, createConversationResponse{
		ConversationID: conversationID,
		Businesses:     toBusinessDTOs(dir),
	})
}

func (s *Server) handleContinueConversation(w http.ResponseWriter, r *http.Request) {
	var req continueConversationRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ConversationID == "" || req.UserRequest == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "conversation_id and user_request are required"})
		return
	}

	reply, err := s.svc.Continue(r.Context(), req.ConversationID, req.UserRequest)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, continueConversationResponse{ResponseMessage: reply})
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = &n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = &n
		}
	}

	workflows, err := s.vapiClient.ListWorkflows(r.Context(), page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, workflows)
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var req triggerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.WorkflowID == "" || req.User == "" || req.ServiceType == "" || req.Window == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "workflowId, user, serviceType and window are required"})
		return
	}

	phoneNumberID := req.PhoneNumberID
	if phoneNumberID == "" {
		phoneNumberID = s.phoneNumberID
	}

	webhookURL := strings.TrimRight(s.publicURL, "/") + "/webhooks/vapi"
	s.log.Debug().
		Str("workflow_id", req.WorkflowID).
		Str("webhook_url", webhookURL).
		Msg("starting workflow call")

	result, err := s.vapiClient.StartWorkflowCall(r.Context(), vapi.StartCallParams{
		WorkflowID:     req.WorkflowID,
		CustomerNumber: req.CustomerNumber,
		PhoneNumberID:  phoneNumberID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":     result.ID,
		"status": result.Status,
		"variables": map[string]string{
			"user":         req.User,
			"service_type": req.ServiceType,
			"time_window":  req.Window,
		},
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body"})
		return
	}

	event := map[string]any{}
	// Tolerate any payload shape; an empty event is stored as-is.
	_ = sonic.Unmarshal(body, &event)
	s.webhooks.SetLast(event)

	summary := vapi.BookingSummary(event)
	s.log.Info().Interface("summary", summary).Msg("vapi webhook received")

	s.notifyBooking(event, summary)

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleLastWebhook(w http.ResponseWriter, _ *http.Request) {
	last := s.webhooks.Last()
	if last == nil {
		last = map[string]any{}
	}
	s.writeJSON(w, http.StatusOK, last)
}

// notifyBooking texts the customer a booking summary when SMS is configured
// and the event carries a customer number.
func (s *Server) notifyBooking(event, summary map[string]any) {
	if s.notifier == nil {
		return
	}
	customer, _ := event["customer"].(map[string]any)
	number, _ := customer["number"].(string)
	if number == "" {
		return
	}

	text := "Booking update"
	if name, ok := summary["business_name"].(string); ok {
		text += " at " + name
	}
	if date, ok := summary["chosen_date"].(string); ok {
		text += " on " + date
	}
	if t, ok := summary["chosen_time"].(string); ok {
		text += " at " + t
	}

	if err := s.notifier.Send(number, text); err != nil {
		s.log.Warn().Err(err).Msg("failed to send booking SMS")
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body is required"})
		return false
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// writeError maps the pipeline error taxonomy to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *vapi.APIError
	switch {
	case errors.Is(err, search.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, search.ErrUnavailable), errors.Is(err, llm.ErrModelUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, directory.ErrMalformed):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		status = apiErr.Status
	}

	s.log.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
