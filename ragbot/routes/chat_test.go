package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ragbot/ragbot/config"
	"ragbot/ragbot/controllers"
	"ragbot/ragbot/conversation"
	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/services/prompt"
	"ragbot/ragbot/services/retrieval"
	"ragbot/ragbot/services/vectorstore"
	"ragbot/ragbot/types"
	"ragbot/ragbot/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	m.Run()
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (f fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i], _ = f.Embed(ctx, texts[i])
	}
	return out, nil
}

type fakeStore struct {
	results []vectorstore.SearchResult
	err     error
}

func (f *fakeStore) Search(ctx context.Context, vector []float32, limit int) ([]vectorstore.SearchResult, error) {
	return f.results, f.err
}
func (f *fakeStore) Upsert(ctx context.Context, points []vectorstore.Point) error { return nil }
func (f *fakeStore) Close() error                                                 { return nil }

func newServer(t *testing.T, store vectorstore.Store) *httptest.Server {
	t.Helper()
	builder, err := prompt.NewBuilder(config.DefaultPromptTemplate)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	pipeline := retrieval.NewPipeline(fakeEmbedder{}, store, 0)
	orch := orchestrator.New(conversation.NewStore(), pipeline, builder, 3)
	ctrl := controllers.NewChatController(orch)

	srv := httptest.NewServer(ChatRoutes(ctrl))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatRoute_Success(t *testing.T) {
	srv := newServer(t, &fakeStore{results: []vectorstore.SearchResult{
		{ID: "1", Content: "a relevant doc", Score: 0.9},
	}})

	body := `{"user_id":"42","content":"what is this?"}`
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out types.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(out.Prompt, "a relevant doc") {
		t.Errorf("expected document in prompt, got:\n%s", out.Prompt)
	}
}

func TestChatRoute_RetrievalFailureIsBadGateway(t *testing.T) {
	srv := newServer(t, &fakeStore{err: errors.New("store unreachable")})

	body := `{"user_id":"42","content":"hi"}`
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
}

func TestChatRoute_EmptyContentIsBadRequest(t *testing.T) {
	srv := newServer(t, &fakeStore{})

	body := `{"user_id":"42","content":""}`
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatRoute_MessagesAndReset(t *testing.T) {
	srv := newServer(t, &fakeStore{})
	client := srv.Client()

	body := `{"user_id":"7","content":"hello"}`
	if _, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body)); err != nil {
		t.Fatalf("post failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/7/messages")
	if err != nil {
		t.Fatalf("get messages failed: %v", err)
	}
	var msgs []types.MessageView
	json.NewDecoder(resp.Body).Decode(&msgs)
	resp.Body.Close()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/7", nil)
	delResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", delResp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/7/messages")
	if err != nil {
		t.Fatalf("get messages failed: %v", err)
	}
	msgs = nil
	json.NewDecoder(resp.Body).Decode(&msgs)
	resp.Body.Close()
	if len(msgs) != 0 {
		t.Errorf("expected empty history after reset, got %d", len(msgs))
	}
}

func TestChatRoute_Summary(t *testing.T) {
	srv := newServer(t, &fakeStore{results: []vectorstore.SearchResult{
		{ID: "1", Content: "a relevant doc", Score: 0.9},
	}})

	body := `{"user_id":"5","content":"hello"}`
	if _, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body)); err != nil {
		t.Fatalf("post failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/5/summary")
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain summary, got %s", ct)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, "Conversation state:") {
		t.Errorf("expected the diagnostic header, got:\n%s", text)
	}
	if !strings.Contains(text, "Context present: yes") {
		t.Errorf("summary should report the stored context, got:\n%s", text)
	}
}

func TestChatRoute_MessagesWithLimit(t *testing.T) {
	srv := newServer(t, &fakeStore{})

	for _, q := range []string{"one", "two"} {
		body := `{"user_id":"9","content":"` + q + `"}`
		if _, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body)); err != nil {
			t.Fatalf("post failed: %v", err)
		}
	}

	resp, err := http.Get(srv.URL + "/9/messages?limit=1")
	if err != nil {
		t.Fatalf("get messages failed: %v", err)
	}
	defer resp.Body.Close()

	var msgs []types.MessageView
	json.NewDecoder(resp.Body).Decode(&msgs)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 trailing message, got %d", len(msgs))
	}
	if msgs[0].Role != "assistant" {
		t.Errorf("the trailing message should be the last assistant entry, got %s", msgs[0].Role)
	}
}
