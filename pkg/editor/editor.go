// Package editor is the host-facing card editor: it holds the configuration
// and state accessor attached by the dashboard, renders descriptor rows into
// widgets and routes widget changes back through the binder.
package editor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier registers the host's config-changed subscriber.
func WithNotifier(n binder.Notifier) Option {
	return func(e *Editor) {
		e.notifier = n
	}
}

// WithLogger sets the logger shared with the binder.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor binds a form to the host. The zero value is not usable; call New.
type Editor struct {
	mu       sync.Mutex
	config   model.Config
	hass     entity.Host
	notifier binder.Notifier
	logger   *zap.Logger
	binder   *binder.Binder

	// notifyMu orders host notifications; seq and notified track which
	// applied change was announced last.
	notifyMu sync.Mutex
	seq      uint64
	notified uint64
}

// New constructs an Editor with no configuration or host attached.
func New(options ...Option) *Editor {
	e := &Editor{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.binder = binder.New(
		binder.WithNotifier(e.notifier),
		binder.WithLogger(e.logger),
	)
	return e
}

// SetConfig attaches the host-owned configuration.
func (e *Editor) SetConfig(cfg model.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg
}

// SetHass attaches the host state accessor.
func (e *Editor) SetHass(host entity.Host) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hass = host
}

// Config returns the currently attached configuration.
func (e *Editor) Config() model.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Ready reports whether both the configuration and the host are attached.
func (e *Editor) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config != nil && e.hass != nil
}

// RenderForm builds the widget tree for rows from the attached configuration.
func (e *Editor) RenderForm(rows []model.FormControlRow) (widgets.Form, error) {
	return widgets.BuildForm(rows, e.Config())
}

// RenderControl builds a single control from the attached configuration.
func (e *Editor) RenderControl(control model.FormControl) (widgets.Node, error) {
	return widgets.BuildControl(control, e.Config())
}

// HandleChange applies ev to the attached configuration and notifies the host.
// Changes arriving before both configuration and host are attached are
// dropped; the boolean reports whether ev was applied. Notifications are
// delivered in the order changes were applied, and a snapshot older than one
// already announced is not sent.
func (e *Editor) HandleChange(ctx context.Context, ev binder.ChangeEvent) (bool, error) {
	e.mu.Lock()
	if e.config == nil || e.hass == nil {
		e.mu.Unlock()
		e.logger.Debug("change discarded, editor not attached")
		return false, nil
	}
	next, err := binder.Apply(e.config, ev)
	if err != nil {
		e.mu.Unlock()
		e.logger.Warn("change rejected", zap.Error(err))
		return false, err
	}
	e.config = next
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	source := ev.EventSource()
	e.logger.Debug("config updated",
		zap.String("tag", source.Tag),
		zap.String("config_value", source.ConfigValue),
	)

	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	if seq < e.notified {
		e.logger.Debug("stale notification skipped", zap.Uint64("seq", seq))
		return true, nil
	}
	e.notified = seq
	return true, e.binder.Notify(ctx, next)
}

// GetEntitiesByDomain lists host entities of domain as dropdown options.
func (e *Editor) GetEntitiesByDomain(domain string) []model.DropdownOption {
	return entity.ByDomain(e.states(), domain)
}

// GetEntitiesByDeviceClass lists host entities of domain with the given
// device class.
func (e *Editor) GetEntitiesByDeviceClass(domain, deviceClass string) []model.DropdownOption {
	return entity.ByDeviceClass(e.states(), domain, deviceClass)
}

// GetDropdownOptionsFromEnum projects enum members into dropdown options.
func (e *Editor) GetDropdownOptionsFromEnum(members []model.EnumMember) []model.DropdownOption {
	return model.OptionsFromEnum(members)
}

func (e *Editor) states() entity.Registry {
	e.mu.Lock()
	host := e.hass
	e.mu.Unlock()
	if host == nil {
		return nil
	}
	return host.States()
}
