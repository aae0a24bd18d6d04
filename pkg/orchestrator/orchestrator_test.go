package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardeditor/pkg/descriptor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/orchestrator"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

const lightDescriptor = `
editors:
  light-card:
    title: Light card
    rows:
      - label: Entity
        controls:
          - label: Light
            configValue: entity
            type: dropdown
            itemsFrom:
              domain: light
      - label: Display
        cssClass: side-by-side
        controls:
          - label: Compact
            configValue: compact
            type: switch
          - label: Debug
            configValue: debug
            type: switch
`

func loadStore(t *testing.T) *descriptor.Store {
	t.Helper()
	store, err := descriptor.Parse([]byte(lightDescriptor), "editors.yaml")
	if err != nil {
		t.Fatalf("parse descriptor: %v", err)
	}
	return store
}

func states() entity.Registry {
	return entity.Registry{
		"light.porch":   {EntityID: "light.porch", Attributes: map[string]any{entity.AttrFriendlyName: "Porch"}},
		"light.kitchen": {EntityID: "light.kitchen", Attributes: map[string]any{entity.AttrFriendlyName: "Kitchen"}},
		"switch.fan":    {EntityID: "switch.fan"},
	}
}

func TestGenerateRendersDescriptor(t *testing.T) {
	gen := orchestrator.New()
	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Store:    loadStore(t),
		EditorID: "light-card",
		Config:   model.Config{"entity": "light.porch", "compact": true},
		States:   states(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`<h2 class="card-config-title">Light card</h2>`,
		`value="light.porch"`,
		`&#34;label&#34;:&#34;Kitchen&#34;,&#34;value&#34;:&#34;light.kitchen&#34;`,
		`<div class="form-row side-by-side">`,
		`<ha-switch id="compact" name="compact" data-config-value="compact" checked>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "switch.fan") {
		t.Fatalf("entities outside the domain must not be offered")
	}
}

func TestFormAppliesTransformer(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformerFromFS(fstest.MapFS{
		"preset.json": {Data: []byte(`{"controls":{"compact":{"label":"Dense"}},"hide":["debug"]}`)},
	}, "preset.json")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	store := loadStore(t)
	gen := orchestrator.New(orchestrator.WithTransformer(preset))
	form, err := gen.Form(context.Background(), orchestrator.Request{Store: store, EditorID: "light-card"})
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	var keys, labels []string
	for _, row := range form.Rows {
		for _, node := range row.Controls {
			node.Walk(func(n widgets.Node) bool {
				switch {
				case n.IsControl():
					keys = append(keys, n.ConfigValue)
				case n.Kind == widgets.KindLabel && n.Label != "":
					labels = append(labels, n.Label)
				}
				return true
			})
		}
	}
	if diff := cmp.Diff([]string{"entity", "compact"}, keys); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dense"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	// The store keeps its own rows.
	ed, err := store.Editor("light-card")
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	if got := len(ed.Rows[1].Controls); got != 2 {
		t.Fatalf("store rows mutated, got %d controls", got)
	}
}

func TestPresetRejectsUnknownControl(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformer([]byte(`{"controls":{"missing":{"label":"x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	gen := orchestrator.New(orchestrator.WithTransformer(preset))
	_, err = gen.Form(context.Background(), orchestrator.Request{Store: loadStore(t), EditorID: "light-card"})
	if err == nil || !strings.Contains(err.Error(), `control "missing" not found`) {
		t.Fatalf("expected unknown control error, got %v", err)
	}
}

func TestGenerateErrors(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{Store: loadStore(t), EditorID: "nope"})
	if !errors.Is(err, descriptor.ErrEditorNotFound) {
		t.Fatalf("expected ErrEditorNotFound, got %v", err)
	}

	_, err = gen.Generate(context.Background(), orchestrator.Request{})
	if err == nil {
		t.Fatalf("expected error without store or rows")
	}

	_, err = gen.Generate(context.Background(), orchestrator.Request{
		Rows:     []model.FormControlRow{{Controls: []model.FormControl{{Type: model.FormControlTypeSwitch, ConfigValue: "x"}}}},
		Renderer: "pdf",
	})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	_, err = gen.Generate(context.Background(), orchestrator.Request{
		Rows: []model.FormControlRow{{Controls: []model.FormControl{{Type: model.FormControlTypeRadio, ConfigValue: "mode"}}}},
	})
	if !errors.Is(err, widgets.ErrMissingItems) {
		t.Fatalf("expected ErrMissingItems, got %v", err)
	}
}
