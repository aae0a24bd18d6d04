package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/internal/logging"
	"github.com/goliatone/go-cardeditor/pkg/binder"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := newSession(uuid.NewString(), r.RemoteAddr)
	s.hub.add(sess)
	logging.LogConnection(sess.id, sess.remote, "opened")

	go s.writePump(conn, sess)
	s.readPump(r.Context(), conn, sess)

	s.hub.remove(sess)
	logging.LogConnection(sess.id, sess.remote, "closed")
}

func (s *Server) readPump(ctx context.Context, conn *websocket.Conn, sess *session) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info("websocket closed", zap.String("session", sess.id), zap.Error(err))
			}
			return
		}
		logging.LogMessage(sess.id, "received", data)
		s.handleMessage(ctx, sess, data)
	}
}

func (s *Server) handleMessage(ctx context.Context, sess *session, data []byte) {
	ev, err := binder.Decode(data)
	if err == nil {
		var applied bool
		applied, err = s.editor.HandleChange(ctx, ev)
		if err == nil && !applied {
			err = errors.New("editor is not attached")
		}
	}
	if err == nil {
		return
	}

	s.logger.Warn("change rejected", zap.String("session", sess.id), zap.Error(err))
	payload, encErr := json.Marshal(ErrorMessage{Type: MessageError, Error: err.Error()})
	if encErr != nil {
		return
	}
	sess.enqueue(payload)
}

func (s *Server) writePump(conn *websocket.Conn, sess *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-sess.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-sess.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Debug("websocket write failed", zap.String("session", sess.id), zap.Error(err))
				return
			}
			logging.LogMessage(sess.id, "sent", payload)
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
