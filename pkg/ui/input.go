package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vctt94/holdemengine/pkg/poker"
)

// InputHandler handles input processing for different UI states
type InputHandler struct {
	ui *PokerUI
}

// HandleKeyMsg processes keyboard input based on current state
func (ih *InputHandler) HandleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return ih.ui.quit()
	case "l":
		ih.ui.showLog = !ih.ui.showLog
		return nil
	case "v":
		ih.ui.showDebug = !ih.ui.showDebug
		return nil
	}

	switch ih.ui.state {
	case stateDeciding:
		return ih.handleDecisionInput(msg)
	case stateRaiseInput:
		return ih.handleRaiseInput(msg)
	default:
		if msg.String() == "q" {
			return ih.ui.quit()
		}
	}
	return nil
}

// handleDecisionInput processes input while the seat is asked to act.
func (ih *InputHandler) handleDecisionInput(msg tea.KeyMsg) tea.Cmd {
	ui := ih.ui
	switch msg.String() {
	case "q":
		return ui.quit()
	case "up", "k":
		if ui.selectedItem > 0 {
			ui.selectedItem--
		}
	case "down", "j":
		if ui.selectedItem < len(ui.menuOptions)-1 {
			ui.selectedItem++
		}
	case "enter", " ":
		if ui.selectedItem < len(ui.menuOptions) {
			ih.choose(ui.menuOptions[ui.selectedItem])
		}
	case "f":
		ih.choose(poker.Fold)
	case "c":
		if ih.legal(poker.Check) {
			ih.choose(poker.Check)
		} else {
			ih.choose(poker.Call)
		}
	case "r":
		ih.choose(poker.Raise)
	case "a":
		ih.choose(poker.AllIn)
	}
	return nil
}

// choose submits a, or opens the raise prompt for Raise.
func (ih *InputHandler) choose(a poker.Action) {
	ui := ih.ui
	if !ih.legal(a) {
		ui.message = fmt.Sprintf("%s is not legal now", a)
		return
	}
	if a == poker.Raise {
		ui.state = stateRaiseInput
		ui.raiseAmount = strconv.FormatInt(ui.request.Min, 10)
		ui.message = ""
		return
	}
	ui.respond(poker.Decision{Action: a})
}

func (ih *InputHandler) legal(a poker.Action) bool {
	for _, l := range ih.ui.menuOptions {
		if l == a {
			return true
		}
	}
	return false
}

// handleRaiseInput processes input for the raise target prompt
func (ih *InputHandler) handleRaiseInput(msg tea.KeyMsg) tea.Cmd {
	ui := ih.ui
	switch msg.String() {
	case "esc", "q":
		ui.state = stateDeciding
		ui.raiseAmount = ""
	case "enter":
		amount, err := strconv.ParseInt(ui.raiseAmount, 10, 64)
		if err != nil {
			ui.message = "Enter a number"
			return nil
		}
		req := ui.request
		if amount < req.Min || amount > req.Max {
			ui.message = fmt.Sprintf("Raise to between %d and %d", req.Min, req.Max)
			return nil
		}
		ui.respond(poker.Decision{Action: poker.Raise, Amount: amount})
	case "backspace":
		if len(ui.raiseAmount) > 0 {
			ui.raiseAmount = ui.raiseAmount[:len(ui.raiseAmount)-1]
		}
	default:
		// Handle number input
		if len(msg.String()) == 1 && msg.String()[0] >= '0' && msg.String()[0] <= '9' {
			ui.raiseAmount += msg.String()
		}
	}
	return nil
}
