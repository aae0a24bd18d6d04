package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/internal/config"
	"github.com/goliatone/go-cardeditor/internal/logging"
	"github.com/goliatone/go-cardeditor/pkg/descriptor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

// workspace is everything a command needs to open one editor.
type workspace struct {
	settings config.Settings
	store    *descriptor.Store
	editor   descriptor.Editor
	card     model.Config
	states   entity.Registry
	logger   *zap.Logger
}

// loadSettings merges the settings file, environment and flags, and sets up
// logging.
func loadSettings(flags *globalFlags) (config.Settings, error) {
	settings, err := config.Load(flags.settingsFile)
	if err != nil {
		return config.Settings{}, err
	}
	override := func(dst *string, value string) {
		if strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	override(&settings.Descriptor, flags.descriptor)
	override(&settings.Editor, flags.editor)
	override(&settings.Config, flags.card)
	override(&settings.States, flags.states)
	override(&settings.LogLevel, flags.logLevel)

	if err := logging.Initialize(settings.LogLevel); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func loadStates(path string) (entity.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return entity.Registry{}, nil
	}
	return entity.LoadStatesFile(path)
}

func openWorkspace(flags *globalFlags) (*workspace, error) {
	settings, err := loadSettings(flags)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	store, err := loadStore(settings.Descriptor)
	if err != nil {
		return nil, err
	}
	ed, err := pickEditor(store, settings.Editor)
	if err != nil {
		return nil, err
	}
	card, err := config.LoadCardConfig(settings.Config)
	if err != nil {
		return nil, err
	}
	states, err := loadStates(settings.States)
	if err != nil {
		return nil, err
	}

	logger := logging.Named("cardeditor")
	logger.Debug("workspace opened",
		zap.String("descriptor", settings.Descriptor),
		zap.String("editor", ed.ID),
		zap.Int("states", len(states)),
	)
	return &workspace{
		settings: settings,
		store:    store,
		editor:   ed,
		card:     card,
		states:   states,
		logger:   logger,
	}, nil
}

// rows returns the selected editor's rows with entity items resolved.
func (w *workspace) rows() []model.FormControlRow {
	return descriptor.Resolve(w.editor.Rows, w.states)
}

// reload re-reads the descriptor and returns the selected editor's rows.
func (w *workspace) reload() ([]model.FormControlRow, error) {
	store, err := loadStore(w.settings.Descriptor)
	if err != nil {
		return nil, err
	}
	ed, err := store.Editor(w.editor.ID)
	if err != nil {
		return nil, err
	}
	w.store = store
	w.editor = ed
	return w.rows(), nil
}

func loadStore(path string) (*descriptor.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	if info.IsDir() {
		return descriptor.LoadFS(os.DirFS(path))
	}
	return descriptor.LoadFile(path)
}

func pickEditor(store *descriptor.Store, id string) (descriptor.Editor, error) {
	if strings.TrimSpace(id) != "" {
		return store.Editor(id)
	}
	ids := store.IDs()
	switch len(ids) {
	case 0:
		return descriptor.Editor{}, fmt.Errorf("descriptor defines no editors")
	case 1:
		return store.Editor(ids[0])
	default:
		return descriptor.Editor{}, fmt.Errorf("descriptor defines several editors (%s); pick one with --editor", strings.Join(ids, ", "))
	}
}
