package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/rags2riches/internal/game"
)

// Session ties an engine to a running Bubble Tea program. Engine
// events are forwarded to the program as messages and the model serves
// as the engine's agent, so the session goroutine and the UI goroutine
// only meet through channels.
type Session struct {
	logger  *log.Logger
	engine  *game.Engine
	model   *Model
	program *tea.Program
}

// NewSession creates a session over the engine for the named player.
func NewSession(logger *log.Logger, engine *game.Engine, playerName, dealerName string) *Session {
	model := NewModel(playerName, dealerName)
	program := tea.NewProgram(model, tea.WithAltScreen())

	engine.EventBus().Subscribe(func(ev game.Event) {
		program.Send(ev)
	})

	return &Session{
		logger:  logger.WithPrefix("tui"),
		engine:  engine,
		model:   model,
		program: program,
	}
}

// Run plays rounds until the player quits or the context is cancelled.
// Quitting the UI cancels the round in flight, which is how a blocked
// bet or decision prompt unwinds.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiDone := make(chan struct{})
	go func() {
		if _, err := s.program.Run(); err != nil {
			s.logger.Error("UI exited with error", "error", err)
		}
		cancel()
		close(uiDone)
	}()
	defer func() {
		s.program.Quit()
		<-uiDone
	}()

	for {
		if _, err := s.engine.PlayRound(ctx, s.model); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := s.model.AwaitNextRound(ctx); err != nil {
			return nil
		}
	}
}
