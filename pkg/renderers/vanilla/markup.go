package vanilla

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

func renderRows(rows []widgets.Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(`    <div class="`)
		b.WriteString(html.EscapeString(row.Class))
		b.WriteString("\">\n")
		b.WriteString("        <label>")
		b.WriteString(html.EscapeString(row.Label))
		b.WriteString("</label>\n")
		for _, node := range row.Controls {
			writeNode(&b, node, 2)
		}
		b.WriteString("    </div>\n")
	}
	return b.String()
}

func writeNode(b *strings.Builder, node widgets.Node, depth int) {
	switch node.Kind {
	case widgets.KindEmpty:
		return
	case widgets.KindFragment:
		for _, child := range node.Children {
			writeNode(b, child, depth)
		}
		return
	}

	indent(b, depth)
	switch node.Kind {
	case widgets.KindGroup:
		b.WriteString(`<div class="`)
		b.WriteString(html.EscapeString(node.Class))
		b.WriteString("\">\n")
		for _, child := range node.Children {
			writeNode(b, child, depth+1)
		}
		indent(b, depth)
		b.WriteString("</div>\n")
	case widgets.KindLabel:
		b.WriteString("<label")
		attr(b, "for", node.For)
		b.WriteString(">")
		b.WriteString(html.EscapeString(node.Label))
		b.WriteString("</label>\n")
	default:
		writeControl(b, node)
	}
}

func writeControl(b *strings.Builder, node widgets.Node) {
	tag := string(node.Kind)
	b.WriteString("<")
	b.WriteString(tag)
	attr(b, "id", node.ID)
	attr(b, "name", node.Name)
	attr(b, "label", node.Label)
	attr(b, "data-config-value", node.ConfigValue)

	switch node.Kind {
	case widgets.KindComboBox:
		attr(b, "value", node.Value)
		items, err := json.Marshal(node.Items)
		if err == nil {
			b.WriteString(` data-items="`)
			b.WriteString(html.EscapeString(string(items)))
			b.WriteString(`"`)
		}
	case widgets.KindTextField, widgets.KindRadio, widgets.KindCheckbox:
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(node.Value))
		b.WriteString(`"`)
	}
	if node.Checked {
		b.WriteString(" checked")
	}
	b.WriteString("></")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func attr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
}
