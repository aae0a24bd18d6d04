package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

// ErrDetached is returned when the change sink refuses events because it has
// no configuration or host attached.
var ErrDetached = errors.New("tui: editor is not attached")

// ChangeSink receives the change events a session produces. *editor.Editor
// satisfies it.
type ChangeSink interface {
	HandleChange(ctx context.Context, ev binder.ChangeEvent) (bool, error)
	Config() model.Config
}

// binderSink applies events to a private configuration through a binder.
type binderSink struct {
	binder *binder.Binder
	config model.Config
}

func (s *binderSink) HandleChange(ctx context.Context, ev binder.ChangeEvent) (bool, error) {
	next, err := s.binder.Handle(ctx, s.config, ev)
	if next == nil {
		return false, err
	}
	s.config = next
	return true, err
}

func (s *binderSink) Config() model.Config {
	return s.config
}

// State tracks a running session. Every answer becomes a change event, the
// same path widget events take in the browser.
type State struct {
	sink    ChangeSink
	changes int
}

// NewState seeds a session that applies changes to a copy of cfg through b.
func NewState(b *binder.Binder, cfg model.Config) *State {
	if b == nil {
		b = binder.New()
	}
	return &State{sink: &binderSink{binder: b, config: cfg.Clone()}}
}

// NewEditorState runs a session against an attached editor.
func NewEditorState(sink ChangeSink) *State {
	return &State{sink: sink}
}

// Config returns the current configuration.
func (s *State) Config() model.Config {
	return s.sink.Config()
}

// Changes reports how many events were applied.
func (s *State) Changes() int {
	return s.changes
}

// Apply forwards ev to the sink.
func (s *State) Apply(ctx context.Context, ev binder.ChangeEvent) error {
	applied, err := s.sink.HandleChange(ctx, ev)
	if applied {
		s.changes++
	}
	if err != nil {
		return fmt.Errorf("tui: apply %s: %w", ev.EventSource().ConfigValue, err)
	}
	if !applied {
		return ErrDetached
	}
	return nil
}
