package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

func buildForm(t *testing.T, cfg model.Config) widgets.Form {
	t.Helper()
	rows := []model.FormControlRow{
		{
			Label: "General",
			Controls: []model.FormControl{
				{Type: model.FormControlTypeTextbox, ConfigValue: "title", Label: "Title"},
				{Type: model.FormControlTypeDropdown, ConfigValue: "entity", Label: "Entity", Items: []model.DropdownOption{
					{Label: "Kitchen", Value: "light.kitchen"},
				}},
			},
		},
		{
			Label:    "Options",
			CSSClass: "side-by-side",
			Controls: []model.FormControl{
				{Type: model.FormControlTypeSwitch, ConfigValue: "compact", Label: "Compact"},
				{Type: model.FormControlTypeRadio, ConfigValue: "mode", Label: "Mode", Items: []model.DropdownOption{
					{Label: "Auto", Value: "auto"},
					{Label: "Manual", Value: "manual"},
				}},
				{Type: model.FormControlTypeCheckboxes, ConfigValue: "tags", Label: "Tags", Items: []model.DropdownOption{
					{Label: "A", Value: "a"},
					{Label: "B", Value: "b"},
				}},
				{Type: model.FormControlTypeCheckbox, ConfigValue: "unused"},
			},
		},
	}
	form, err := widgets.BuildForm(rows, cfg)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRendererRendersWidgets(t *testing.T) {
	cfg := model.Config{
		"title":   `Kitchen "main"`,
		"entity":  "light.kitchen",
		"compact": true,
		"mode":    "manual",
		"tags":    []string{"b"},
	}
	out, err := newRenderer(t).Render(context.Background(), buildForm(t, cfg), render.RenderOptions{Title: "Light <card>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<div class="card-config">`,
		`<h2 class="card-config-title">Light &lt;card&gt;</h2>`,
		`<div class="form-row">`,
		`<div class="form-row side-by-side">`,
		`<label>General</label>`,
		`<ha-textfield label="Title" data-config-value="title" value="Kitchen &#34;main&#34;"></ha-textfield>`,
		`<ha-combo-box label="Entity" data-config-value="entity" value="light.kitchen" data-items="[{&#34;label&#34;:&#34;Kitchen&#34;,&#34;value&#34;:&#34;light.kitchen&#34;}]"></ha-combo-box>`,
		`<ha-switch id="compact" name="compact" data-config-value="compact" checked></ha-switch>`,
		`<label for="compact">Compact</label>`,
		`<ha-radio id="mode_auto" name="mode" data-config-value="mode" value="auto"></ha-radio>`,
		`<ha-radio id="mode_manual" name="mode" data-config-value="mode" value="manual" checked></ha-radio>`,
		`<ha-checkbox id="tags_a" name="tags[]" data-config-value="tags" value="a"></ha-checkbox>`,
		`<ha-checkbox id="tags_b" name="tags[]" data-config-value="tags" value="b" checked></ha-checkbox>`,
		`.form-row {`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}

	if strings.Contains(html, "unused") {
		t.Fatalf("unsupported checkbox control should render nothing")
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("runtime script must only be emitted with an endpoint")
	}
	if strings.Index(html, `data-config-value="title"`) > strings.Index(html, `data-config-value="entity"`) {
		t.Fatalf("controls rendered out of order")
	}
}

func TestRendererRuntimeAndTheme(t *testing.T) {
	opts := render.RenderOptions{
		Endpoint: "ws://localhost:8123/ws",
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{
				"--brand":  "#123456",
				"--broken": "red;}</style>",
			},
		},
	}
	out, err := newRenderer(t, vanilla.WithStylesheet("/assets/custom.css")).Render(context.Background(), buildForm(t, model.Config{"tags": []string{}}), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`data-endpoint="ws://localhost:8123/ws"`,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`--brand: #123456;`,
		`<script>`,
		`new WebSocket`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "--broken") {
		t.Fatalf("unsafe css variable must be dropped")
	}
}

func TestRendererWithoutInlineStyles(t *testing.T) {
	out, err := newRenderer(t, vanilla.WithoutInlineStyles()).Render(context.Background(), widgets.Form{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<style>") {
		t.Fatalf("expected no style block, got\n%s", out)
	}
	if !strings.Contains(string(out), `<div class="card-config">`) {
		t.Fatalf("expected default form class, got\n%s", out)
	}
}

func TestRendererKeepsThemeWithoutInlineStyles(t *testing.T) {
	opts := render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "dark",
			CSSVars: map[string]string{"--primary-color": "#03a9f4"},
		},
	}
	out, err := newRenderer(t, vanilla.WithoutInlineStyles()).Render(context.Background(), widgets.Form{}, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`data-theme="dark"`,
		"<style>\n.card-config {\n    --primary-color: #03a9f4;\n}\n</style>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, ".form-row {") {
		t.Fatalf("expected bundled stylesheet to stay out of the page\n%s", html)
	}
}

func TestRendererBlankFormClassFallsBack(t *testing.T) {
	opts := render.RenderOptions{
		Theme: &theme.RendererConfig{CSSVars: map[string]string{"--brand": "#123456"}},
	}
	out, err := newRenderer(t, vanilla.WithoutInlineStyles()).Render(context.Background(), widgets.Form{Class: "   "}, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), ".card-config {\n    --brand: #123456;") {
		t.Fatalf("expected theme scoped to the default class\n%s", out)
	}
}

func TestRendererCustomTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/editor.tmpl": {Data: []byte(`<section>{{ rows|safe }}</section>`)},
	}
	out, err := newRenderer(t, vanilla.WithTemplatesFS(fsys)).Render(context.Background(), buildForm(t, model.Config{"tags": []string{}}), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "<section>") || !strings.Contains(string(out), "ha-switch") {
		t.Fatalf("unexpected output\n%s", out)
	}
}

func TestRendererHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, widgets.Form{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAssetsFS(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected identity %s %s", renderer.Name(), renderer.ContentType())
	}
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		if _, err := vanilla.AssetsFS().Open(name); err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
	}
}
