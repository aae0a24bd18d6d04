// Package server serves the HTML card editor and bridges widget events from
// the browser to an editor.Editor over a WebSocket.
//
// Routes:
//
//	GET /          editor page (vanilla renderer)
//	GET /config    current card configuration as JSON
//	GET /assets/   embedded stylesheet and runtime script
//	GET /ws        WebSocket: widget change events in, config-changed out
//
// Every accepted change is broadcast to all connected sessions as a
// config-changed message, so several browser tabs stay in sync.
package server
