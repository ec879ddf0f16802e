package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentrag/internal/domain"
)

// End-to-end turn against an empty knowledge base: the router picks web
// search and the final answer is grounded in the fixed snippets.
func TestChatServiceWebSearchTurn(t *testing.T) {
	snippets := []domain.SearchSnippet{
		{Title: "Qdrant", Link: "https://qdrant.tech", Snippet: "Qdrant is a vector similarity search engine."},
		{Title: "Qdrant docs", Link: "https://qdrant.tech/documentation", Snippet: "Qdrant stores points with payloads."},
	}
	completer := &mockCompleter{fn: func(req domain.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{"route": "web_search"}`, nil
		}
		// The answer model echoes its context so the test can check
		// grounding.
		return req.User, nil
	}}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	store := &mockStore{chunks: nil}
	searcher := &mockSearcher{snippets: snippets}

	svc := NewChatService(
		NewRouter(completer, "router-model"),
		NewExecutor(embedder, store, searcher, completer, "answer-model", 3, 5),
	)

	answer, err := svc.RunTurn(context.Background(), "What is Qdrant?")
	require.NoError(t, err)
	assert.Equal(t, domain.RouteWebSearch, answer.Route)
	assert.Contains(t, answer.Text, "Qdrant is a vector similarity search engine.")
	assert.Contains(t, answer.Text, "https://qdrant.tech")

	assert.Equal(t, 0, store.searchCalls, "web-routed turn must not touch the vector store")
	assert.Equal(t, 1, searcher.calls)
	// one routing call plus one answer call
	require.Len(t, completer.calls, 2)
	assert.Equal(t, "router-model", completer.calls[0].Model)
	assert.Equal(t, "answer-model", completer.calls[1].Model)
}

func TestChatServiceRoutingFailureFailsTurn(t *testing.T) {
	completer := &mockCompleter{fn: func(req domain.CompletionRequest) (string, error) {
		return "not a decision", nil
	}}
	searcher := &mockSearcher{}
	store := &mockStore{}
	svc := NewChatService(
		NewRouter(completer, "router-model"),
		NewExecutor(&mockEmbedder{vector: []float32{0.1}}, store, searcher, completer, "answer-model", 3, 5),
	)

	_, err := svc.RunTurn(context.Background(), "ambiguous")
	require.Error(t, err)
	assert.Equal(t, 0, searcher.calls)
	assert.Equal(t, 0, store.searchCalls)
}

// The router prompt promises a one-field JSON object; make sure the
// contract in the prompt matches what the parser accepts.
func TestRouterPromptAndParserAgree(t *testing.T) {
	for _, route := range []domain.Route{domain.RouteVectorSearch, domain.RouteWebSearch, domain.RouteNone} {
		raw, err := json.Marshal(map[string]string{"route": string(route)})
		require.NoError(t, err)
		require.True(t, strings.Contains(routerSystemPrompt, `"`+string(route)+`"`),
			"prompt must name route %s", route)

		completer := &mockCompleter{fn: func(domain.CompletionRequest) (string, error) {
			return string(raw), nil
		}}
		got, err := NewRouter(completer, "m").Route(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, route, got)
	}
}
