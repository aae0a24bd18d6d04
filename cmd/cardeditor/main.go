// Cardeditor renders and edits dashboard card configurations from
// declarative editor descriptors.
//
// Usage:
//
//	cardeditor render   --descriptor editors/ --editor light-card --card card.yaml
//	cardeditor edit     --descriptor editors.yaml --card card.yaml --write
//	cardeditor serve    --descriptor editors/ --states states.json --watch
//	cardeditor entities light --states states.json
//
// Settings can also come from cardeditor.yaml and CARDEDITOR_* variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-cardeditor/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
