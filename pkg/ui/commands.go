package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vctt94/holdemengine/pkg/poker"
)

// Messages delivered from the engine goroutine into the update loop.
type requestMsg poker.DecisionRequest
type tableEventMsg poker.TableEvent
type requestsClosedMsg struct{}
type eventsClosedMsg struct{}
type tickMsg struct{}

// sessionDoneMsg reports that the session goroutine returned.
type sessionDoneMsg struct{ err error }

// waitForRequest blocks until the engine asks the interactive seat to act.
func waitForRequest(ch <-chan poker.DecisionRequest) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return requestsClosedMsg{}
		}
		return requestMsg(req)
	}
}

// waitForEvent blocks until the engine publishes the next table event.
func waitForEvent(ch <-chan poker.TableEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return tableEventMsg(ev)
	}
}

// waitForDone reports the session result once done is closed or written.
func waitForDone(done <-chan error) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		return sessionDoneMsg{err: <-done}
	}
}

// logTicker refreshes the log pane.
func logTicker() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
