// Package tui renders a blackjack session as a Bubble Tea program.
// The model doubles as the engine's agent: key presses feed result
// channels the engine blocks on, and engine events arrive back as
// Bubble Tea messages for rendering.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/rags2riches/internal/deck"
	"github.com/lox/rags2riches/internal/game"
	"github.com/lox/rags2riches/internal/statistics"
)

// phase tracks which prompt the table is showing.
type phase int

const (
	phaseIdle phase = iota
	phaseBetting
	phasePlaying
	phaseResolved
)

// Model is the Bubble Tea model for a blackjack table. It implements
// game.Agent: the engine calls PlaceBet and Decide from its own
// goroutine and blocks until a key press produces a result.
type Model struct {
	playerName string
	dealerName string

	betInput textinput.Model

	// Agent result channels, buffered so the UI never blocks on a
	// slow consumer. Stale values are drained at round boundaries.
	bets      chan float64
	decisions chan game.Action
	nextRound chan struct{}

	phase    phase
	quitting bool

	balance     float64
	bet         float64
	stats       statistics.SessionStats
	playerHand  game.Hand
	playerValue int
	dealerHand  game.Hand
	dealerValue int
	holeHidden  bool
	message     string

	width int
}

// NewModel creates a table model for the named player and dealer.
func NewModel(playerName, dealerName string) *Model {
	ti := textinput.New()
	ti.Placeholder = "enter your bet"
	ti.CharLimit = 12
	ti.Width = 20
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		playerName: playerName,
		dealerName: dealerName,
		betInput:   ti,
		bets:       make(chan float64, 1),
		decisions:  make(chan game.Action, 1),
		nextRound:  make(chan struct{}, 1),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case game.Event:
		m.applyEvent(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		return m.handleKey(msg)
	}

	if m.phase == phaseBetting {
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseBetting:
		if msg.String() == "enter" {
			m.submitBet()
			return m, nil
		}
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd

	case phasePlaying:
		switch msg.String() {
		case "h":
			m.offerDecision(game.ActionHit)
		case "s":
			m.offerDecision(game.ActionStand)
		case "q":
			return m.quit()
		}

	case phaseResolved:
		switch msg.String() {
		case "n", "enter":
			select {
			case m.nextRound <- struct{}{}:
			default:
			}
		case "q":
			return m.quit()
		}
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

// submitBet parses the bet field and hands it to the waiting engine.
// Unparseable input stays in the prompt with a message.
func (m *Model) submitBet() {
	raw := strings.TrimSpace(m.betInput.Value())
	bet, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.message = fmt.Sprintf("%q is not a bet", raw)
		return
	}

	m.message = ""
	m.betInput.Blur()
	select {
	case m.bets <- bet:
	default:
	}
}

func (m *Model) offerDecision(action game.Action) {
	select {
	case m.decisions <- action:
	default:
	}
}

// applyEvent folds an engine event into the display state.
func (m *Model) applyEvent(ev game.Event) {
	switch ev := ev.(type) {
	case game.RoundStartEvent:
		m.phase = phaseBetting
		m.balance = ev.Balance
		m.bet = 0
		m.playerHand = nil
		m.playerValue = 0
		m.dealerHand = nil
		m.dealerValue = 0
		m.holeHidden = false
		m.message = ""
		m.betInput.SetValue("")
		m.betInput.Focus()
		m.drainStale()

	case game.BetPlacedEvent:
		m.phase = phasePlaying
		m.bet = ev.Bet
		m.balance = ev.Balance

	case game.BetRejectedEvent:
		m.phase = phaseResolved
		m.betInput.Blur()
		m.message = fmt.Sprintf("Bet rejected: %v", ev.Err)

	case game.BetTimeoutEvent:
		m.phase = phaseResolved
		m.betInput.Blur()
		m.message = fmt.Sprintf("No bet placed within %s, round abandoned", ev.Timeout)

	case game.CardDealtEvent:
		if ev.Seat == game.SeatPlayer {
			m.playerHand = append(m.playerHand, ev.Card)
			m.playerValue = ev.HandValue
		} else {
			m.dealerHand = append(m.dealerHand, ev.Card)
			m.dealerValue = ev.HandValue
			if ev.Hidden {
				m.holeHidden = true
			}
		}

	case game.DealerRevealEvent:
		m.holeHidden = false
		m.dealerHand = append(game.Hand{}, ev.Hand...)
		m.dealerValue = ev.HandValue

	case game.RoundResolvedEvent:
		m.phase = phaseResolved
		m.balance = ev.Balance
		m.stats = ev.Stats
		m.playerHand = ev.PlayerHand
		m.playerValue = ev.PlayerValue
		m.dealerHand = ev.DealerHand
		m.dealerValue = ev.DealerValue
		m.holeHidden = false
		m.message = outcomeMessage(ev.Outcome, ev.Delta)
	}
}

// drainStale clears results buffered by key presses that arrived after
// the engine had stopped listening for them.
func (m *Model) drainStale() {
	select {
	case <-m.bets:
	default:
	}
	select {
	case <-m.decisions:
	default:
	}
}

// PlaceBet implements game.Agent
func (m *Model) PlaceBet(ctx context.Context, prompt game.BetPrompt) (float64, error) {
	select {
	case bet := <-m.bets:
		return bet, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Decide implements game.Agent
func (m *Model) Decide(ctx context.Context, view game.RoundView) (game.Action, error) {
	select {
	case action := <-m.decisions:
		return action, nil
	case <-ctx.Done():
		return game.ActionStand, ctx.Err()
	}
}

// AwaitNextRound blocks until the player asks for another round.
func (m *Model) AwaitNextRound(ctx context.Context) error {
	select {
	case <-m.nextRound:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" Rags To Riches Blackjack "))
	b.WriteString("\n")
	b.WriteString(StatsStyle.Render(fmt.Sprintf(
		"Balance: %.2f cr.  W/L: %d/%d  Net: %+.2f",
		m.balance, m.stats.Wins, m.stats.Losses, m.stats.Net())))
	b.WriteString("\n\n")

	b.WriteString(m.renderSeat(m.dealerName, m.dealerHand, m.dealerValue, m.holeHidden))
	b.WriteString("\n")
	b.WriteString(m.renderSeat(m.playerName, m.playerHand, m.playerValue, false))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}

	switch m.phase {
	case phaseBetting:
		b.WriteString(fmt.Sprintf("Place your bet (%.2f cr. available)\n", m.balance))
		b.WriteString(m.betInput.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Enter to bet • Esc to quit"))
	case phasePlaying:
		b.WriteString(HelpStyle.Render("[h]it • [s]tand • [q]uit"))
	case phaseResolved:
		b.WriteString(HelpStyle.Render("[n]ext round • [q]uit"))
	default:
		b.WriteString(HelpStyle.Render("Waiting for the table..."))
	}
	b.WriteString("\n")

	return b.String()
}

// renderSeat renders one labelled hand line. The dealer's second card
// renders face down while the hole card is hidden, and the shown value
// covers visible cards only.
func (m *Model) renderSeat(name string, hand game.Hand, value int, holeHidden bool) string {
	label := SeatLabelStyle.Render(fmt.Sprintf("%-12s", name))
	if len(hand) == 0 {
		return label + HiddenCardStyle.Render("--")
	}

	var cards []string
	for i, card := range hand {
		if holeHidden && i == 1 {
			cards = append(cards, HiddenCardStyle.Render("[??]"))
			continue
		}
		cards = append(cards, renderCard(card))
	}

	return fmt.Sprintf("%s%s  (%d)", label, strings.Join(cards, " "), value)
}

// renderCard formats a card with suit coloring.
func renderCard(card deck.Card) string {
	text := "[" + card.String() + "]"
	if card.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

// outcomeMessage describes a resolved round for the message line.
func outcomeMessage(outcome game.Outcome, delta float64) string {
	switch outcome {
	case game.OutcomePlayerBlackjack:
		return WinStyle.Render(fmt.Sprintf("Blackjack! You win %.2f cr.", delta))
	case game.OutcomeDealerBust:
		return WinStyle.Render(fmt.Sprintf("Dealer busts! You win %.2f cr.", delta))
	case game.OutcomePlayerWin:
		return WinStyle.Render(fmt.Sprintf("You win %.2f cr.", delta))
	case game.OutcomePlayerBust:
		return LoseStyle.Render(fmt.Sprintf("Bust! You lose %.2f cr.", -delta))
	case game.OutcomeDealerWin:
		return LoseStyle.Render(fmt.Sprintf("Dealer wins, you lose %.2f cr.", -delta))
	case game.OutcomePush:
		return PushStyle.Render("Push, your bet is returned.")
	}
	return ""
}
