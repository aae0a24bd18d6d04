// Package watch reloads descriptor documents when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before OnChange
// fires.
const DefaultDebounce = 250 * time.Millisecond

// Config holds the watcher settings.
type Config struct {
	// Path is a descriptor file or a directory of descriptor files.
	Path string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// OnChange is called once per burst of changes.
	OnChange func()
	// Ignore lists files under Path whose changes never trigger OnChange,
	// such as a card configuration the server writes back.
	Ignore []string
	Logger *zap.Logger
}

// Watcher monitors descriptor files.
type Watcher struct {
	config Config
	dir    string
	file   string
	ignore map[string]struct{}

	timerMu sync.Mutex
	timer   *time.Timer
}

// New validates cfg and resolves what to watch.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: path is required")
	}
	if cfg.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: stat %s: %w", cfg.Path, err)
	}
	w := &Watcher{config: cfg, ignore: make(map[string]struct{}, len(cfg.Ignore))}
	for _, path := range cfg.Ignore {
		if path == "" {
			continue
		}
		w.ignore[absPath(path)] = struct{}{}
	}
	if info.IsDir() {
		w.dir = cfg.Path
	} else {
		// Editors replace files on save, so watch the parent directory.
		w.dir = filepath.Dir(cfg.Path)
		w.file = filepath.Base(cfg.Path)
	}
	return w, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	w.config.Logger.Info("watching descriptors", zap.String("path", w.config.Path))

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.relevant(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	w.config.Logger.Debug("descriptor changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	w.trigger()
}

func (w *Watcher) relevant(name string) bool {
	if _, skip := w.ignore[absPath(name)]; skip {
		return false
	}
	base := filepath.Base(name)
	if w.file != "" {
		return base == w.file
	}
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func (w *Watcher) trigger() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.config.OnChange)
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
