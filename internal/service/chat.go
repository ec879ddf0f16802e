package service

import "context"

// ChatService runs one full turn: route the query, then execute the
// selected path. Exactly one routing decision governs a turn.
type ChatService struct {
	router   *Router
	executor *Executor
}

func NewChatService(router *Router, executor *Executor) *ChatService {
	return &ChatService{router: router, executor: executor}
}

// RunTurn produces the answer for a single query. Any upstream failure
// (routing, retrieval, completion) fails the whole turn.
func (s *ChatService) RunTurn(ctx context.Context, query string) (Answer, error) {
	route, err := s.router.Route(ctx, query)
	if err != nil {
		return Answer{}, err
	}
	return s.executor.Execute(ctx, query, route)
}
