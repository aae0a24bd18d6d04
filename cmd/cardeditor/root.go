package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardeditor/internal/version"
)

// globalFlags are shared by every command that opens an editor.
type globalFlags struct {
	settingsFile string
	descriptor   string
	editor       string
	card         string
	states       string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "cardeditor",
		Short: "Render and edit dashboard card configurations",
		Long: `Cardeditor turns a declarative editor descriptor into a card editor.

The descriptor lists rows of controls (dropdowns, radios, checkbox lists,
switches and text boxes), each bound to one key of the card configuration.
The editor can be rendered to HTML, served with live updates over a
WebSocket, or filled in interactively from the terminal.`,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.settingsFile, "config", "", "Settings file (default ./cardeditor.yaml when present)")
	pf.StringVarP(&flags.descriptor, "descriptor", "d", "", "Descriptor file or directory")
	pf.StringVarP(&flags.editor, "editor", "e", "", "Editor id within the descriptor (optional when only one is defined)")
	pf.StringVarP(&flags.card, "card", "c", "", "Card configuration file (YAML or JSON)")
	pf.StringVar(&flags.states, "states", "", "Home Assistant states dump (JSON) for entity lookups")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")

	root.AddCommand(
		newRenderCmd(flags),
		newEditCmd(flags),
		newServeCmd(flags),
		newEntitiesCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cardeditor %s\n", version.Full())
		},
	}
}
