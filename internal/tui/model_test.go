package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentrag/internal/domain"
	"agentrag/internal/service"
)

type fakeService struct {
	answer service.Answer
	err    error
	calls  int
}

func (f *fakeService) RunTurn(_ context.Context, _ string) (service.Answer, error) {
	f.calls++
	return f.answer, f.err
}

func pressEnter(t *testing.T, m Model, query string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(query)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestSubmitRunsOneTurn(t *testing.T) {
	svc := &fakeService{answer: service.Answer{Route: domain.RouteNone, Text: "four"}}
	m := sized(New(svc, "ready"))

	m, cmd := pressEnter(t, m, "2+2?")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	msg := cmd()
	turn, ok := msg.(turnMsg)
	require.True(t, ok)
	assert.Equal(t, 1, svc.calls)

	next, _ := m.Update(turn)
	m = next.(Model)
	assert.False(t, m.busy)
	require.Len(t, m.transcript, 1)
	assert.Equal(t, "four", m.transcript[0].answer.Text)
	assert.Contains(t, m.View(), "four")
}

func TestFailedTurnKeepsLoopAlive(t *testing.T) {
	svc := &fakeService{err: errors.New("routing: unknown route \"hybrid\"")}
	m := sized(New(svc, "ready"))

	m, cmd := pressEnter(t, m, "odd question")
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)

	require.Len(t, m.transcript, 1)
	require.Error(t, m.transcript[0].err)
	assert.False(t, m.busy, "a failed turn must free the loop for the next query")
	assert.Contains(t, m.View(), "unknown route")

	// the next query still goes through
	svc.err = nil
	svc.answer = service.Answer{Route: domain.RouteNone, Text: "ok"}
	m, cmd = pressEnter(t, m, "next question")
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)
	require.Len(t, m.transcript, 2)
	assert.NoError(t, m.transcript[1].err)
}

func TestBusyModelIgnoresSubmit(t *testing.T) {
	svc := &fakeService{answer: service.Answer{Route: domain.RouteNone, Text: "x"}}
	m := sized(New(svc, "ready"))

	m, cmd := pressEnter(t, m, "first")
	require.NotNil(t, cmd)

	m, cmd2 := pressEnter(t, m, "second while busy")
	assert.Nil(t, cmd2)
	assert.True(t, m.busy)
	_ = cmd
}

func TestQuitInputExits(t *testing.T) {
	m := sized(New(&fakeService{}, "ready"))
	_, cmd := pressEnter(t, m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEmptyInputIsIgnored(t *testing.T) {
	m := sized(New(&fakeService{}, "ready"))
	_, cmd := pressEnter(t, m, "   ")
	assert.Nil(t, cmd)
}
