package widgets

import "github.com/goliatone/go-cardeditor/pkg/model"

// Kind identifies a node of the widget tree. Control kinds carry the tag
// names of the host widget library.
type Kind string

const (
	KindComboBox  Kind = "ha-combo-box"
	KindRadio     Kind = "ha-radio"
	KindCheckbox  Kind = "ha-checkbox"
	KindSwitch    Kind = "ha-switch"
	KindTextField Kind = "ha-textfield"
	KindLabel     Kind = "label"
	KindGroup     Kind = "div"
	KindFragment  Kind = "fragment"
	KindEmpty     Kind = "empty"
)

// Class names shared with the host stylesheet.
const (
	ClassCardConfig  = "card-config"
	ClassFormRow     = "form-row"
	ClassFormControl = "form-control"
)

// Node is one element of the rendered widget tree. Only the fields relevant
// to Kind are populated: Label is the text of a label node or the label
// attribute of a control, For points a label at a control ID.
type Node struct {
	Kind        Kind                   `json:"kind"`
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name,omitempty"`
	Class       string                 `json:"class,omitempty"`
	Label       string                 `json:"label,omitempty"`
	For         string                 `json:"for,omitempty"`
	ConfigValue string                 `json:"configValue,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Checked     bool                   `json:"checked,omitempty"`
	Items       []model.DropdownOption `json:"items,omitempty"`
	Children    []Node                 `json:"children,omitempty"`
}

// IsControl reports whether the node is a bindable widget.
func (n Node) IsControl() bool {
	switch n.Kind {
	case KindComboBox, KindRadio, KindCheckbox, KindSwitch, KindTextField:
		return true
	default:
		return false
	}
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Row is the grouping element produced for one descriptor row. Controls holds
// exactly one node per descriptor control, in order.
type Row struct {
	Class    string `json:"class"`
	Label    string `json:"label,omitempty"`
	Controls []Node `json:"controls"`
}

// Form is the root of the widget tree.
type Form struct {
	Class string `json:"class"`
	Rows  []Row  `json:"rows"`
}

// Controls returns every bindable widget in document order.
func (f Form) Controls() []Node {
	var out []Node
	for _, row := range f.Rows {
		for _, control := range row.Controls {
			control.Walk(func(n Node) bool {
				if n.IsControl() {
					out = append(out, n)
				}
				return true
			})
		}
	}
	return out
}
