package binder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// Notifier receives the configuration after every accepted change.
type Notifier interface {
	ConfigChanged(ctx context.Context, cfg model.Config) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, cfg model.Config) error

// ConfigChanged calls fn.
func (fn NotifierFunc) ConfigChanged(ctx context.Context, cfg model.Config) error {
	return fn(ctx, cfg)
}

// Option configures a Binder.
type Option func(*Binder)

// WithNotifier sets the host notifier.
func WithNotifier(n Notifier) Option {
	return func(b *Binder) {
		b.notifier = n
	}
}

// WithLogger sets the logger used for change tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Binder applies change events and announces the result.
type Binder struct {
	notifier Notifier
	logger   *zap.Logger
}

// New builds a Binder. Without a notifier, changes are computed but not
// announced.
func New(options ...Option) *Binder {
	b := &Binder{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Handle applies ev to cfg and notifies the host with the new configuration.
// Authoring errors from Apply are returned untouched and nothing is announced.
func (b *Binder) Handle(ctx context.Context, cfg model.Config, ev ChangeEvent) (model.Config, error) {
	next, err := Apply(cfg, ev)
	if err != nil {
		b.logger.Warn("change rejected", zap.Error(err))
		return nil, err
	}

	source := ev.EventSource()
	b.logger.Debug("config updated",
		zap.String("tag", source.Tag),
		zap.String("config_value", source.ConfigValue),
		zap.Any("value", next[source.ConfigValue]),
	)

	return next, b.Notify(ctx, next)
}

// Notify announces cfg to the host notifier, if any.
func (b *Binder) Notify(ctx context.Context, cfg model.Config) error {
	if b.notifier == nil {
		return nil
	}
	if err := b.notifier.ConfigChanged(ctx, cfg); err != nil {
		return fmt.Errorf("binder: notify %s: %w", EventConfigChanged, err)
	}
	return nil
}
