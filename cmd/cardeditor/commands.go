package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardeditor/internal/config"
	"github.com/goliatone/go-cardeditor/internal/server"
	"github.com/goliatone/go-cardeditor/internal/watch"
	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/editor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/orchestrator"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/renderers/tui"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var (
		output   string
		title    string
		endpoint string
		preset   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the editor as HTML",
		Example: `  cardeditor render -d editors/ -e light-card -c card.yaml -o editor.html
  cardeditor render -d editors.yaml --endpoint ws://localhost:8090/ws`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}

			options := []orchestrator.Option{orchestrator.WithLogger(ws.logger)}
			if preset != "" {
				t, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
				if err != nil {
					return err
				}
				options = append(options, orchestrator.WithTransformer(t))
			}
			if title == "" {
				title = ws.editor.Title
			}

			out, err := orchestrator.New(options...).Generate(cmd.Context(), orchestrator.Request{
				Store:    ws.store,
				EditorID: ws.editor.ID,
				Config:   ws.card,
				States:   ws.states,
				RenderOptions: render.RenderOptions{
					Title:    title,
					Endpoint: endpoint,
					Theme:    ws.settings.Theme.RendererConfig(),
				},
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "Heading shown above the form (defaults to the descriptor title)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "WebSocket endpoint for live change events")
	cmd.Flags().StringVar(&preset, "preset", "", "JSON preset applied to the descriptor rows")
	return cmd
}

func newEditCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
		write  bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the card configuration interactively in the terminal",
		Example: `  cardeditor edit -d editors.yaml -c card.yaml --write
  cardeditor edit -d editors.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}
			if write && ws.settings.Config == "" {
				return fmt.Errorf("--write needs a card configuration file (--card)")
			}

			ed := editor.New(editor.WithLogger(ws.logger))
			ed.SetConfig(ws.card)
			ed.SetHass(entity.StaticHost(ws.states))

			form, err := ed.RenderForm(ws.rows())
			if err != nil {
				return err
			}
			renderer, err := tui.New(
				tui.WithEditor(ed),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithTheme(tui.Theme{InfoPrefix: "» ", ErrorPrefix: "! "}),
			)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), form, render.RenderOptions{})
			if err != nil {
				return err
			}

			if write {
				if err := saveCardConfig(ws.settings.Config, ed.Config()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration written to %s\n", ws.settings.Config)
				return nil
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "Output format (json, yaml, pretty)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the card configuration file")
	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		listen string
		title  string
		save   bool
		watchF bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor over HTTP with live updates",
		Long: `Serve the editor page and a WebSocket that applies widget changes to the
card configuration. Every change is pushed back to all open pages as a
config-changed message.`,
		Example: `  cardeditor serve -d editors/ -c card.yaml --states states.json
  cardeditor serve -d editors.yaml --listen :9000 --watch --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}
			if listen != "" {
				ws.settings.Listen = listen
			}
			if title == "" {
				title = ws.editor.Title
			}
			if save && ws.settings.Config == "" {
				return fmt.Errorf("--save needs a card configuration file (--card)")
			}

			hub := server.NewHub(ws.logger.Named("hub"))
			var notifier binder.Notifier = hub
			if save {
				path := ws.settings.Config
				notifier = binder.NotifierFunc(func(ctx context.Context, cfg model.Config) error {
					if err := hub.ConfigChanged(ctx, cfg); err != nil {
						return err
					}
					return saveCardConfig(path, cfg)
				})
			}

			ed := editor.New(editor.WithNotifier(notifier), editor.WithLogger(ws.logger))
			ed.SetConfig(ws.card)
			ed.SetHass(entity.StaticHost(ws.states))

			srv, err := server.New(server.Config{
				Listen: ws.settings.Listen,
				Title:  title,
				Theme:  ws.settings.Theme.RendererConfig(),
			}, ed, hub, ws.rows(), server.WithLogger(ws.logger.Named("server")))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s\n", ws.editor.ID, ws.settings.Listen)

			group, ctx := errgroup.WithContext(cmd.Context())
			group.Go(func() error {
				return srv.Run(ctx)
			})
			if watchF {
				watcher, err := watch.New(watch.Config{
					Path:   ws.settings.Descriptor,
					Ignore: []string{ws.settings.Config},
					Logger: ws.logger.Named("watch"),
					OnChange: func() {
						rows, err := ws.reload()
						if err != nil {
							ws.logger.Warn("descriptor reload failed", zap.Error(err))
							return
						}
						srv.SetRows(rows)
					},
				})
				if err != nil {
					return err
				}
				group.Go(func() error {
					return watcher.Run(ctx)
				})
			}
			return group.Wait()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from settings, "+config.DefaultListen+")")
	cmd.Flags().StringVar(&title, "title", "", "Page title (defaults to the descriptor title)")
	cmd.Flags().BoolVar(&save, "save", false, "Write every change back to the card configuration file")
	cmd.Flags().BoolVar(&watchF, "watch", false, "Reload the descriptor when it changes on disk")
	return cmd
}

func newEntitiesCmd(flags *globalFlags) *cobra.Command {
	var deviceClass string
	cmd := &cobra.Command{
		Use:   "entities [domain]",
		Short: "List the entities a dropdown would offer",
		Example: `  cardeditor entities light --states states.json
  cardeditor entities binary_sensor --device-class motion --states states.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(flags)
			if err != nil {
				return err
			}
			if settings.States == "" {
				return fmt.Errorf("a states dump is required (--states)")
			}
			states, err := loadStates(settings.States)
			if err != nil {
				return err
			}

			var options []model.DropdownOption
			switch {
			case len(args) == 0:
				options = allEntities(states)
			case deviceClass != "":
				options = entity.ByDeviceClass(states, args[0], deviceClass)
			default:
				options = entity.ByDomain(states, args[0])
			}
			return writeEntityTable(cmd.OutOrStdout(), states, options)
		},
	}
	cmd.Flags().StringVar(&deviceClass, "device-class", "", "Only entities with this device_class attribute")
	return cmd
}

func allEntities(states entity.Registry) []model.DropdownOption {
	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.DropdownOption, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Option(id, states[id]))
	}
	return out
}

func writeEntityTable(w io.Writer, states entity.Registry, options []model.DropdownOption) error {
	if len(options) == 0 {
		_, err := fmt.Fprintln(w, "No matching entities")
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ENTITY", "NAME", "STATE", "DEVICE CLASS"})
	for _, option := range options {
		state := states[option.Value]
		t.AppendRow(table.Row{option.Value, option.Label, state.State, state.DeviceClass()})
	}
	t.Render()
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// saveCardConfig writes cfg in the format implied by the file extension.
func saveCardConfig(path string, cfg model.Config) error {
	if cfg == nil {
		cfg = model.Config{}
	}
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		data, err = yaml.Marshal(map[string]any(cfg))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
