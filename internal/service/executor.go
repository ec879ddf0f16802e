package service

import (
	"context"
	"fmt"
	"strings"

	"agentrag/internal/domain"
)

// Answers returned without a completion call when retrieval comes back
// empty. Stating the absence explicitly beats letting a model fabricate
// an answer from nothing.
const (
	NoKnowledgeAnswer  = "The knowledge base has no relevant information for this question."
	NoWebResultsAnswer = "The web search returned no relevant results for this question."
)

const vectorAnswerPrompt = `You are a retrieval-augmented assistant.
Answer the user's question using ONLY the knowledge-base excerpts
provided in the message. Do not use outside knowledge. If the excerpts
do not contain the answer, say explicitly that the knowledge base has no
relevant information.`

const webAnswerPrompt = `You are a web-search assistant.
Answer the user's question using ONLY the web search results provided in
the message. Do not use outside knowledge. If the results do not contain
the answer, say explicitly that the search yielded no relevant results.`

const directAnswerPrompt = `As an AI assistant, answer concisely based on
general knowledge. Do not mention searching or tools.`

// Executor runs exactly one execution path per query: at most one
// retrieval call followed by at most one completion call. It never falls
// back from one path to another; failures abort the turn.
type Executor struct {
	embedder    domain.Embedder
	store       domain.VectorStore
	searcher    domain.WebSearcher
	completer   domain.Completer
	answerModel string
	topK        int
	webMax      int
}

func NewExecutor(
	embedder domain.Embedder,
	store domain.VectorStore,
	searcher domain.WebSearcher,
	completer domain.Completer,
	answerModel string,
	topK, webMax int,
) *Executor {
	return &Executor{
		embedder:    embedder,
		store:       store,
		searcher:    searcher,
		completer:   completer,
		answerModel: answerModel,
		topK:        topK,
		webMax:      webMax,
	}
}

// Answer is the outcome of one executed turn, tagged with the path that
// produced it.
type Answer struct {
	Route domain.Route
	Text  string
}

// Execute dispatches the query to the branch selected by route.
func (e *Executor) Execute(ctx context.Context, query string, route domain.Route) (Answer, error) {
	switch route {
	case domain.RouteVectorSearch:
		return e.vectorSearch(ctx, query)
	case domain.RouteWebSearch:
		return e.webSearch(ctx, query)
	case domain.RouteNone:
		return e.direct(ctx, query)
	}
	return Answer{}, fmt.Errorf("execute: unknown route %q", route)
}

func (e *Executor) vectorSearch(ctx context.Context, query string) (Answer, error) {
	vector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return Answer{}, fmt.Errorf("vector search: %w", err)
	}
	chunks, err := e.store.Search(ctx, vector, e.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("vector search: %w", err)
	}
	if len(chunks) == 0 {
		return Answer{Route: domain.RouteVectorSearch, Text: NoKnowledgeAnswer}, nil
	}
	text, err := e.completer.Complete(ctx, domain.CompletionRequest{
		Model:  e.answerModel,
		System: vectorAnswerPrompt,
		User:   groundedPrompt(query, formatChunks(chunks)),
	})
	if err != nil {
		return Answer{}, fmt.Errorf("vector search: %w", err)
	}
	return Answer{Route: domain.RouteVectorSearch, Text: text}, nil
}

func (e *Executor) webSearch(ctx context.Context, query string) (Answer, error) {
	snippets, err := e.searcher.Search(ctx, query, e.webMax)
	if err != nil {
		return Answer{}, fmt.Errorf("web search: %w", err)
	}
	if len(snippets) == 0 {
		return Answer{Route: domain.RouteWebSearch, Text: NoWebResultsAnswer}, nil
	}
	text, err := e.completer.Complete(ctx, domain.CompletionRequest{
		Model:  e.answerModel,
		System: webAnswerPrompt,
		User:   groundedPrompt(query, formatSnippets(snippets)),
	})
	if err != nil {
		return Answer{}, fmt.Errorf("web search: %w", err)
	}
	return Answer{Route: domain.RouteWebSearch, Text: text}, nil
}

func (e *Executor) direct(ctx context.Context, query string) (Answer, error) {
	text, err := e.completer.Complete(ctx, domain.CompletionRequest{
		Model:  e.answerModel,
		System: directAnswerPrompt,
		User:   query,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("direct answer: %w", err)
	}
	return Answer{Route: domain.RouteNone, Text: text}, nil
}

func groundedPrompt(query, context string) string {
	return "Context:\n\n" + context + "\n\nQuestion: " + query
}

func formatChunks(chunks []domain.RetrievedChunk) string {
	pieces := make([]string, 0, len(chunks))
	for i, c := range chunks {
		piece := fmt.Sprintf("Document %d (Score: %.4f):\n%s", i+1, c.Score, c.Text)
		if c.Source != "" {
			piece += "\nSource: " + c.Source
		}
		pieces = append(pieces, piece)
	}
	return strings.Join(pieces, "\n\n---\n\n")
}

func formatSnippets(snippets []domain.SearchSnippet) string {
	pieces := make([]string, 0, len(snippets))
	for i, s := range snippets {
		pieces = append(pieces, fmt.Sprintf("Result %d: %s\nURL: %s\nSnippet: %s", i+1, s.Title, s.Link, s.Snippet))
	}
	return strings.Join(pieces, "\n\n---\n\n")
}
