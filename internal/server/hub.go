package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

// MessageReload asks connected pages to reload after the descriptor changed.
const MessageReload = "reload"

// MessageError reports a rejected change back to the sending session.
const MessageError = "error"

// ErrorMessage is sent to a session whose change was rejected.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

const sendBuffer = 16

// Hub tracks connected sessions and fans messages out to them. It implements
// binder.Notifier, so it can be handed to the editor as the config-changed
// subscriber.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *zap.Logger
}

var _ binder.Notifier = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		sessions: make(map[string]*session),
		logger:   logger,
	}
}

// ConfigChanged broadcasts cfg as a config-changed message.
func (h *Hub) ConfigChanged(_ context.Context, cfg model.Config) error {
	payload, err := json.Marshal(binder.ConfigChangedMessage{
		Type:   binder.EventConfigChanged,
		Config: cfg,
	})
	if err != nil {
		return fmt.Errorf("server: encode %s: %w", binder.EventConfigChanged, err)
	}
	h.Broadcast(payload)
	return nil
}

// Reload tells every page to fetch a fresh copy of the editor.
func (h *Hub) Reload() {
	h.Broadcast([]byte(`{"type":"` + MessageReload + `"}`))
}

// Broadcast queues payload on every session. Sessions whose queue is full are
// disconnected.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.sessions {
		if !s.enqueue(payload) {
			h.logger.Warn("session send queue full, dropping", zap.String("session", id))
			s.close()
		}
	}
}

// Len reports the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
	s.close()
}

// session is one WebSocket client. Only the write pump touches the
// connection for writing.
type session struct {
	id     string
	remote string
	send   chan []byte
	once   sync.Once
	done   chan struct{}
}

func newSession(id, remote string) *session {
	return &session{
		id:     id,
		remote: remote,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

func (s *session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return true
	default:
	}
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
	})
}
