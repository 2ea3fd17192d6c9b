package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clanker/internal/search"
	"clanker/internal/service"
	"clanker/internal/vapi"
)

type stubAgent struct {
	kind  string
	reply string
	err   error
}

func (a *stubAgent) Kind() string { return a.kind }

func (a *stubAgent) Execute(_ context.Context, _ string, _ []*schema.Message) (string, error) {
	return a.reply, a.err
}

type stubSearcher struct {
	raw string
	err error
}

func (s *stubSearcher) Search(_ context.Context, _, _, _, _ string) (string, error) {
	return s.raw, s.err
}

func newTestServer(searchErr error) *Server {
	svc := service.New(service.Options{
		Composer:  &stubAgent{kind: "query_composer", reply: "barbers near me"},
		Cleaner:   &stubAgent{kind: "result_cleaner", reply: `{"Joe's": {"number": "555", "stars": 4.7}, "ACE": {"stars": 4.9}}`},
		Converser: &stubAgent{kind: "conversation", reply: "sure thing"},
		Searcher:  &stubSearcher{raw: "raw results", err: searchErr},
		Logger:    zerolog.Nop(),
	})
	return New(Options{Service: svc, Logger: zerolog.Nop()})
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Routes(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestCreateConversation(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Routes(), http.MethodPost, "/v1/conversation",
		`{"user_request": "I need a haircut"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ConversationID string `json:"conversation_id"`
		Businesses     []struct {
			Name  string   `json:"name"`
			Stars *float64 `json:"stars"`
			Hours *string  `json:"hours"`
		} `json:"businesses"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	require.Len(t, resp.Businesses, 2)
	// Sorted by stars descending.
	assert.Equal(t, "ACE", resp.Businesses[0].Name)
	assert.Equal(t, "Joe's", resp.Businesses[1].Name)
	// Missing fields are explicit nulls.
	assert.Nil(t, resp.Businesses[0].Hours)
}

func TestCreateConversation_Validation(t *testing.T) {
	srv := newTestServer(nil).Routes()

	rec := doJSON(t, srv, http.MethodPost, "/v1/conversation", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/v1/conversation", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateConversation_SearchTimeoutMapsTo504(t *testing.T) {
	rec := doJSON(t, newTestServer(search.ErrTimeout).Routes(), http.MethodPost, "/v1/conversation",
		`{"user_request": "task"}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestContinueConversation(t *testing.T) {
	srv := newTestServer(nil).Routes()

	rec := doJSON(t, srv, http.MethodPatch, "/v1/conversation",
		`{"conversation_id": "c1", "user_request": "more details please"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response_message": "sure thing"}`, rec.Body.String())
}

func TestContinueConversation_Validation(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Routes(), http.MethodPatch, "/v1/conversation",
		`{"user_request": "missing id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVapiRoutesDisabledWithoutClient(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Routes(), http.MethodGet, "/workflows", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTriggerAndWebhook(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/call", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "call-1", "status": "queued"}`))
	}))
	defer upstream.Close()

	svc := service.New(service.Options{
		Composer:  &stubAgent{kind: "query_composer"},
		Cleaner:   &stubAgent{kind: "result_cleaner"},
		Converser: &stubAgent{kind: "conversation"},
		Searcher:  &stubSearcher{},
		Logger:    zerolog.Nop(),
	})
	srv := New(Options{
		Service:    svc,
		VapiClient: vapi.NewClient(upstream.URL, "key"),
		PublicURL:  "https://clanker.example/",
		Logger:     zerolog.Nop(),
	}).Routes()

	rec := doJSON(t, srv, http.MethodPost, "/trigger",
		`{"workflowId": "wf-123", "user": "sam", "serviceType": "haircut", "window": "tomorrow"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"call-1"`)
	assert.Contains(t, rec.Body.String(), `"haircut"`)

	rec = doJSON(t, srv, http.MethodPost, "/trigger", `{"workflowId": "wf-123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/webhooks/vapi",
		`{"status": "completed", "booking": {"date": "2025-07-01"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/debug/last-webhook", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "completed", "booking": {"date": "2025-07-01"}}`, rec.Body.String())
}
