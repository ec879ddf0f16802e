package service

import (
	"context"
	"encoding/json"
	"fmt"

	"agentrag/internal/domain"
)

const routerSystemPrompt = `You are a routing agent for a retrieval-augmented assistant.
Classify the user's query into exactly one execution path:

- "vector_search": the query concerns the ingested knowledge domain
  (specific indexed documents, e.g. model or API documentation that was
  loaded into the knowledge base).
- "web_search": the query needs up-to-date information, current events,
  or general knowledge outside the indexed documents.
- "none": the query needs no retrieval at all (greetings, reasoning,
  questions about yourself).

Respond with a single JSON object of the form {"route": "<path>"} and
nothing else.`

// Router classifies a query into one execution path with a single
// structured-output completion. It performs no retrieval itself.
type Router struct {
	completer domain.Completer
	model     string
}

func NewRouter(completer domain.Completer, model string) *Router {
	return &Router{completer: completer, model: model}
}

// Route returns the routing decision for a query. Output that does not
// parse into one of the known routes is an error for this turn; the
// router never assumes a default path.
func (r *Router) Route(ctx context.Context, query string) (domain.Route, error) {
	raw, err := r.completer.Complete(ctx, domain.CompletionRequest{
		Model:    r.model,
		System:   routerSystemPrompt,
		User:     query,
		JSONMode: true,
	})
	if err != nil {
		return "", fmt.Errorf("routing: %w", err)
	}
	var decision struct {
		Route string `json:"route"`
	}
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		return "", fmt.Errorf("routing: model output %q is not a routing decision: %w", raw, err)
	}
	route, err := domain.ParseRoute(decision.Route)
	if err != nil {
		return "", fmt.Errorf("routing: %w", err)
	}
	return route, nil
}
