// Package ui is the terminal surface for an interactive seat. It renders the
// snapshots published by the engine and answers the decision requests sent by
// a poker.ChannelDecider.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vctt94/holdemengine/pkg/poker"
)

// screenState is the screen currently shown.
type screenState int

const (
	stateWatching screenState = iota // Bots are acting
	stateDeciding                    // Waiting for the human's action
	stateRaiseInput                  // Typing a raise target
	stateFinished                    // Session over
)

const maxEventLines = 8

// Config wires the UI to a running session.
type Config struct {
	// Player is the name of the interactive seat.
	Player string

	Requests <-chan poker.DecisionRequest
	Events   <-chan poker.TableEvent

	// Done receives the session result when play stops.
	Done <-chan error

	// Cancel stops the session when the user quits.
	Cancel context.CancelFunc

	// LogLines returns recent log output for the log pane. Optional.
	LogLines func(n int) []string
}

// PokerUI is the bubbletea model.
type PokerUI struct {
	cfg Config

	state    screenState
	table    poker.TableState
	hasTable bool
	last     poker.Event
	events   []string
	message  string
	err      error

	request      *poker.DecisionRequest
	menuOptions  []poker.Action
	selectedItem int
	raiseAmount  string

	showLog   bool
	showDebug bool
	logLines  []string

	renderer *Renderer
	input    *InputHandler
}

// NewPokerUI creates the model for cfg.
func NewPokerUI(cfg Config) *PokerUI {
	ui := &PokerUI{cfg: cfg, state: stateWatching}
	ui.renderer = &Renderer{ui: ui}
	ui.input = &InputHandler{ui: ui}
	return ui
}

// Init implements tea.Model.
func (ui *PokerUI) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForRequest(ui.cfg.Requests),
		waitForEvent(ui.cfg.Events),
		waitForDone(ui.cfg.Done),
	}
	if ui.cfg.LogLines != nil {
		cmds = append(cmds, logTicker())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (ui *PokerUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return ui, ui.input.HandleKeyMsg(msg)

	case requestMsg:
		req := poker.DecisionRequest(msg)
		ui.request = &req
		ui.table = req.State
		ui.hasTable = true
		ui.menuOptions = req.Legal
		ui.selectedItem = 0
		ui.state = stateDeciding
		ui.message = fmt.Sprintf("Your turn: %d to call", req.Player.ToCall(req.State.CurrentBet))
		// The next request is only sent after this one is answered.
		return ui, waitForRequest(ui.cfg.Requests)

	case tableEventMsg:
		ui.handleEvent(poker.TableEvent(msg))
		return ui, waitForEvent(ui.cfg.Events)

	case requestsClosedMsg, eventsClosedMsg:
		return ui, nil

	case sessionDoneMsg:
		ui.state = stateFinished
		ui.request = nil
		ui.err = msg.err
		ui.message = "Session over"
		return ui, nil

	case tickMsg:
		if ui.cfg.LogLines != nil {
			ui.logLines = ui.cfg.LogLines(maxEventLines)
		}
		return ui, logTicker()
	}
	return ui, nil
}

// View implements tea.Model.
func (ui *PokerUI) View() string {
	return ui.renderer.Render()
}

func (ui *PokerUI) handleEvent(te poker.TableEvent) {
	ui.table = te.State
	ui.hasTable = true
	ui.last = te.Event
	if te.Event.Message == "" {
		return
	}
	ui.events = append(ui.events, te.Event.Message)
	if over := len(ui.events) - maxEventLines; over > 0 {
		ui.events = ui.events[over:]
	}
}

// respond answers the pending request and returns to watching.
func (ui *PokerUI) respond(d poker.Decision) {
	if ui.request == nil {
		return
	}
	ui.request.Respond(d)
	ui.request = nil
	ui.menuOptions = nil
	ui.raiseAmount = ""
	ui.state = stateWatching
	ui.message = ""
}

// quit cancels the session. A pending request is left unanswered; the
// canceled context folds the seat.
func (ui *PokerUI) quit() tea.Cmd {
	if ui.cfg.Cancel != nil {
		ui.cfg.Cancel()
	}
	return tea.Quit
}

// Run shows the UI until the user quits or the session ends and the user
// dismisses the final screen.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(NewPokerUI(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}
