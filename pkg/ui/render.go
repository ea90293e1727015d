package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/vctt94/holdemengine/pkg/poker"
)

// Renderer handles all rendering of UI screens and table elements
type Renderer struct {
	ui *PokerUI
}

// Render draws the current screen.
func (r *Renderer) Render() string {
	ui := r.ui
	var s string
	s += TitleStyle.Render("🃏 Texas Hold'em 🃏") + "\n\n"

	if !ui.hasTable {
		s += BlurredStyle.Render("⏳ Waiting for the first hand...") + "\n"
	} else {
		s += r.renderCommunityCards() + "\n"
		s += r.renderYourCards() + "\n"
		s += r.renderGameInfo() + "\n"
		s += r.renderPlayers() + "\n"
	}

	switch ui.state {
	case stateDeciding:
		s += r.renderActionButtons() + "\n"
	case stateRaiseInput:
		s += r.renderRaiseInput() + "\n"
	case stateFinished:
		s += r.renderFinished() + "\n"
	}

	if ui.message != "" {
		s += FocusedStyle.Render(ui.message) + "\n"
	}
	s += r.renderEvents()
	if ui.showLog {
		s += r.renderLog()
	}
	if ui.showDebug && ui.hasTable {
		s += "\n" + LogPaneStyle.Render(spew.Sdump(r.visiblePlayers())) + "\n"
	}

	s += HelpStyle.Render(r.help())
	return s
}

func (r *Renderer) help() string {
	switch r.ui.state {
	case stateDeciding:
		return "f fold · c check/call · r raise · a all-in · ↑↓ + enter select · l log · v debug · q quit"
	case stateRaiseInput:
		return "Type the raise target and press Enter, or esc to go back"
	default:
		return "l log · v debug · q quit"
	}
}

// visiblePlayers copies the seats with opponents' hole cards hidden until
// they are shown down.
func (r *Renderer) visiblePlayers() []poker.Player {
	players := append([]poker.Player(nil), r.ui.table.Players...)
	if r.ui.last.Kind == poker.EventShowdown {
		return players
	}
	for i := range players {
		if players[i].Name != r.ui.cfg.Player {
			players[i].Hole = nil
		}
	}
	return players
}

// renderCommunityCards shows the board with placeholders for undealt cards.
func (r *Renderer) renderCommunityCards() string {
	board := r.ui.table.Community
	cards := make([]string, 0, 5)
	for _, c := range board {
		cards = append(cards, formatCard(c))
	}
	for i := len(board); i < 5; i++ {
		cards = append(cards, CardStyle.Render("🂠"))
	}

	var s string
	s += SectionStyle.Render("COMMUNITY CARDS") + "\n"
	s += lipgloss.JoinHorizontal(lipgloss.Center, cards...) + "\n"
	s += PhaseStyle.Render(r.ui.table.Street().String())
	return s
}

// renderYourCards shows the interactive seat's hole cards.
func (r *Renderer) renderYourCards() string {
	var hole []poker.Card
	for _, p := range r.ui.table.Players {
		if p.Name == r.ui.cfg.Player {
			hole = p.Hole
			break
		}
	}

	cards := []string{CardStyle.Render("🂠"), CardStyle.Render("🂠")}
	if len(hole) > 0 {
		cards = cards[:0]
		for _, c := range hole {
			cards = append(cards, formatCard(c))
		}
	}

	s := SectionStyle.Render("YOUR CARDS") + "\n"
	s += lipgloss.JoinHorizontal(lipgloss.Center, cards...)
	if len(hole) > 0 && len(r.ui.table.Community) >= 3 {
		rank := poker.Evaluate(append(append([]poker.Card(nil), hole...), r.ui.table.Community...))
		s += "\n" + InfoStyle.Render(rank.String())
	}
	return s
}

// renderGameInfo displays the pot and the bet to match.
func (r *Renderer) renderGameInfo() string {
	t := r.ui.table
	info := fmt.Sprintf("💰 POT: %d", t.Pot)
	if t.CurrentBet > 0 {
		info += fmt.Sprintf(" | Current Bet: %d", t.CurrentBet)
	}
	info += fmt.Sprintf(" | Min Raise: %d", t.MinRaise)
	return PotStyle.Render(info)
}

// renderPlayers draws one box per seat.
func (r *Renderer) renderPlayers() string {
	t := r.ui.table
	boxes := make([]string, 0, len(t.Players))
	for i, p := range t.Players {
		var style lipgloss.Style
		switch {
		case p.Name == r.ui.cfg.Player:
			style = YourPlayerStyle
		case p.Folded:
			style = FoldedPlayerStyle
		case r.ui.last.Player == p.Name:
			style = CurrentPlayerStyle
		default:
			style = PlayerBoxStyle
		}
		boxes = append(boxes, style.Render(r.formatPlayerInfo(i, p)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// formatPlayerInfo creates a formatted string for player information
func (r *Renderer) formatPlayerInfo(seat int, p poker.Player) string {
	name := p.Name
	if len(name) > 12 {
		name = name[:12] + "..."
	}
	if seat == r.ui.table.Dealer {
		name += " (D)"
	}

	info := []string{
		fmt.Sprintf("👤 %s", name),
		fmt.Sprintf("💰 %d", p.Chips),
	}
	if p.StreetBet > 0 {
		info = append(info, fmt.Sprintf("🎯 Bet: %d", p.StreetBet))
	}
	switch p.Status() {
	case poker.StatusFolded:
		info = append(info, "❌ Folded")
	case poker.StatusAllIn:
		info = append(info, "⚡ All-in")
	}
	return strings.Join(info, "\n")
}

// renderActionButtons lists the legal actions for the pending request.
func (r *Renderer) renderActionButtons() string {
	ui := r.ui
	var s string
	s += TitleStyle.Render("🎯 YOUR TURN - Choose your action 🎯") + "\n"

	for i, a := range ui.menuOptions {
		var text string
		switch a {
		case poker.Fold:
			text = "❌ Fold"
		case poker.Check:
			text = "✅ Check"
		case poker.Call:
			text = fmt.Sprintf("📞 Call %d", ui.request.Player.ToCall(ui.table.CurrentBet))
		case poker.Raise:
			text = fmt.Sprintf("💸 Raise (%d-%d)", ui.request.Min, ui.request.Max)
		case poker.AllIn:
			text = fmt.Sprintf("⚡ All-in (%d)", ui.request.Player.Chips)
		default:
			text = a.String()
		}
		if i == ui.selectedItem {
			s += FocusedStyle.Render("▶ "+text) + "\n"
		} else {
			s += BlurredStyle.Render("  "+text) + "\n"
		}
	}
	return s
}

// renderRaiseInput renders the raise target prompt
func (r *Renderer) renderRaiseInput() string {
	req := r.ui.request
	var s string
	s += TitleStyle.Render("💸 Enter Raise Target 💸") + "\n\n"
	s += fmt.Sprintf("Raise to between %d and %d\n", req.Min, req.Max)
	s += FocusedStyle.Render(fmt.Sprintf("Raise to: %s", r.ui.raiseAmount)) + "\n"
	return s
}

func (r *Renderer) renderFinished() string {
	var s string
	s += TitleStyle.Render("🏆 Session over 🏆") + "\n"
	if r.ui.err != nil {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", r.ui.err)) + "\n"
	}
	return s
}

// renderEvents lists the most recent table events.
func (r *Renderer) renderEvents() string {
	if len(r.ui.events) == 0 {
		return ""
	}
	return "\n" + InfoStyle.Render(strings.Join(r.ui.events, "\n")) + "\n"
}

func (r *Renderer) renderLog() string {
	if len(r.ui.logLines) == 0 {
		return ""
	}
	return "\n" + LogPaneStyle.Render(strings.Join(r.ui.logLines, "\n")) + "\n"
}

// formatCard renders a card, red for hearts and diamonds.
func formatCard(c poker.Card) string {
	if isRedSuit(c.Suit()) {
		return RedCardStyle.Render(c.String())
	}
	return CardStyle.Render(c.String())
}

// isRedSuit determines if a suit should be displayed in red
func isRedSuit(s poker.Suit) bool {
	return s == poker.Hearts || s == poker.Diamonds
}
