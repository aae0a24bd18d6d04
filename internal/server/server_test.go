package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/editor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

func testRows() []model.FormControlRow {
	return []model.FormControlRow{{
		Label: "Card",
		Controls: []model.FormControl{
			{Type: model.FormControlTypeTextbox, ConfigValue: "title", Label: "Title"},
			{Type: model.FormControlTypeCheckboxes, ConfigValue: "tags", Label: "Tags", Items: []model.DropdownOption{
				{Label: "A", Value: "a"},
				{Label: "B", Value: "b"},
			}},
		},
	}}
}

func newTestServer(t *testing.T, attach bool) (*Server, *Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil)
	ed := editor.New(editor.WithNotifier(hub))
	if attach {
		ed.SetConfig(model.Config{"title": "Kitchen", "tags": []any{"a"}})
		ed.SetHass(entity.StaticHost{})
	}
	srv, err := New(Config{Title: "Light card"}, ed, hub, testRows())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, hub, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func waitForSessions(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Len() == n }, 5*time.Second, 10*time.Millisecond)
}

func TestIndexRendersEditor(t *testing.T) {
	_, _, ts := newTestServer(t, true)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	html := string(body)
	require.Contains(t, html, "<title>Light card</title>")
	require.Contains(t, html, `value="Kitchen"`)
	require.Contains(t, html, `<ha-checkbox id="tags_a" name="tags[]" data-config-value="tags" value="a" checked>`)
	require.Contains(t, html, `data-endpoint="ws://`+strings.TrimPrefix(ts.URL, "http://")+`/ws"`)
	require.Contains(t, html, `href="assets/cardeditor.css"`)
}

func TestIndexReportsAuthoringErrors(t *testing.T) {
	hub := NewHub(nil)
	ed := editor.New(editor.WithNotifier(hub))
	ed.SetConfig(model.Config{"tags": "a"})
	srv, err := New(Config{}, ed, hub, testRows())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConfigAndAssets(t *testing.T) {
	srv, _, _ := newTestServer(t, true)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"title":"Kitchen","tags":["a"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/cardeditor.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), ".form-row")
}

func TestWebSocketBroadcastsConfigChanges(t *testing.T) {
	_, hub, ts := newTestServer(t, true)
	sender := dial(t, ts)
	watcher := dial(t, ts)
	waitForSessions(t, hub, 2)

	require.NoError(t, sender.WriteJSON(binder.WireEvent{
		Type:   binder.EventChange,
		Target: binder.WireTarget{TagName: "ha-checkbox", ConfigValue: "tags", Value: "b", Checked: binder.Checked(true)},
	}))

	for _, conn := range []*websocket.Conn{sender, watcher} {
		msg := readJSON(t, conn)
		require.Equal(t, binder.EventConfigChanged, msg["type"])
		require.Equal(t, map[string]any{"title": "Kitchen", "tags": []any{"a", "b"}}, msg["config"])
	}
}

func TestWebSocketReportsRejectedChanges(t *testing.T) {
	_, hub, ts := newTestServer(t, false)
	conn := dial(t, ts)
	waitForSessions(t, hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"change","target":{"tagName":"ha-textfield","configValue":"title","value":"x"}}`)))
	msg := readJSON(t, conn)
	require.Equal(t, MessageError, msg["type"])
	require.Contains(t, msg["error"], "not attached")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	msg = readJSON(t, conn)
	require.Equal(t, MessageError, msg["type"])
}

func TestSetRowsAsksPagesToReload(t *testing.T) {
	srv, hub, ts := newTestServer(t, true)
	conn := dial(t, ts)
	waitForSessions(t, hub, 1)

	srv.SetRows(nil)
	msg := readJSON(t, conn)
	require.Equal(t, MessageReload, msg["type"])
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	_, _, ts := newTestServer(t, true)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t, true)
	srv.config.Listen = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHubConfigChangedEncodesMessage(t *testing.T) {
	hub := NewHub(nil)
	sess := newSession("s1", "local")
	hub.add(sess)

	require.NoError(t, hub.ConfigChanged(context.Background(), model.Config{"a": 1}))
	payload := <-sess.send

	var msg binder.ConfigChangedMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	require.Equal(t, binder.EventConfigChanged, msg.Type)
	require.Equal(t, map[string]any{"a": float64(1)}, msg.Config)

	hub.remove(sess)
	require.Zero(t, hub.Len())
}
