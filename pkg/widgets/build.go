package widgets

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// BuildForm translates descriptor rows into a widget tree, reading current
// values from cfg. It never modifies cfg.
func BuildForm(rows []model.FormControlRow, cfg model.Config) (Form, error) {
	form := Form{
		Class: ClassCardConfig,
		Rows:  make([]Row, 0, len(rows)),
	}
	for idx, row := range rows {
		built := Row{
			Class:    rowClass(row),
			Label:    row.Label,
			Controls: make([]Node, 0, len(row.Controls)),
		}
		for _, control := range row.Controls {
			node, err := BuildControl(control, cfg)
			if err != nil {
				return Form{}, fmt.Errorf("row %d: %w", idx, err)
			}
			built.Controls = append(built.Controls, node)
		}
		form.Rows = append(form.Rows, built)
	}
	return form, nil
}

// BuildControl renders a single control. Unknown types, including the
// declared but unsupported checkbox type, yield an empty node.
//
// A checkboxes control whose bound value is missing renders with nothing
// checked; toggling one of its items then fails with binder.ErrNotArray until
// the configuration holds a list.
func BuildControl(control model.FormControl, cfg model.Config) (Node, error) {
	switch control.Type {
	case model.FormControlTypeDropdown:
		return dropdown(control, cfg), nil
	case model.FormControlTypeRadio:
		if control.Items == nil {
			return Node{}, fmt.Errorf("radio %q: %w", control.ConfigValue, ErrMissingItems)
		}
		return radio(control, cfg), nil
	case model.FormControlTypeCheckboxes:
		if control.Items == nil {
			return Node{}, fmt.Errorf("checkboxes %q: %w", control.ConfigValue, ErrMissingItems)
		}
		return checkboxes(control, cfg)
	case model.FormControlTypeSwitch:
		return toggle(control, cfg), nil
	case model.FormControlTypeTextbox:
		return textbox(control, cfg), nil
	}
	return Node{Kind: KindEmpty}, nil
}

func rowClass(row model.FormControlRow) string {
	if row.CSSClass == "" {
		return ClassFormRow
	}
	return ClassFormRow + " " + row.CSSClass
}

func group(children ...Node) Node {
	return Node{Kind: KindGroup, Class: ClassFormControl, Children: children}
}

func optionID(key, value string) string {
	return key + "_" + value
}

func dropdown(control model.FormControl, cfg model.Config) Node {
	items := control.Items
	if items == nil {
		items = []model.DropdownOption{}
	}
	return group(Node{
		Kind:        KindComboBox,
		Label:       control.Label,
		ConfigValue: control.ConfigValue,
		Value:       cfg.StringValue(control.ConfigValue),
		Items:       slices.Clone(items),
	})
}

func radio(control model.FormControl, cfg model.Config) Node {
	key := control.ConfigValue
	current, isString := cfg[key].(string)

	children := make([]Node, 0, 1+2*len(control.Items))
	children = append(children, Node{Kind: KindLabel, Label: control.Label})
	for _, item := range control.Items {
		id := optionID(key, item.Value)
		children = append(children,
			Node{
				Kind:        KindRadio,
				ID:          id,
				Name:        key,
				ConfigValue: key,
				Value:       item.Value,
				Checked:     isString && current == item.Value,
			},
			Node{Kind: KindLabel, For: id, Label: item.Label},
		)
	}
	return group(children...)
}

func checkboxes(control model.FormControl, cfg model.Config) (Node, error) {
	key := control.ConfigValue
	selected, _, err := cfg.StringList(key)
	if err != nil {
		return Node{}, fmt.Errorf("checkboxes %q: %w: %v", key, ErrNotArray, err)
	}

	children := make([]Node, 0, 1+len(control.Items))
	children = append(children, Node{Kind: KindLabel, Label: control.Label})
	for _, item := range control.Items {
		id := optionID(key, item.Value)
		children = append(children, group(
			Node{
				Kind:        KindCheckbox,
				ID:          id,
				Name:        key + "[]",
				ConfigValue: key,
				Value:       item.Value,
				Checked:     slices.Contains(selected, item.Value),
			},
			Node{Kind: KindLabel, For: id, Label: item.Label},
		))
	}
	return Node{Kind: KindFragment, Children: children}, nil
}

func toggle(control model.FormControl, cfg model.Config) Node {
	key := control.ConfigValue
	return group(
		Node{
			Kind:        KindSwitch,
			ID:          key,
			Name:        key,
			ConfigValue: key,
			Checked:     cfg.Truthy(key),
		},
		Node{Kind: KindLabel, For: key, Label: control.Label},
	)
}

func textbox(control model.FormControl, cfg model.Config) Node {
	return group(Node{
		Kind:        KindTextField,
		Label:       control.Label,
		ConfigValue: control.ConfigValue,
		Value:       cfg.StringValue(control.ConfigValue),
	})
}
