package model

// FormControlType is the closed set of control kinds a descriptor can declare.
type FormControlType string

const (
	FormControlTypeDropdown   FormControlType = "dropdown"
	FormControlTypeCheckbox   FormControlType = "checkbox"
	FormControlTypeCheckboxes FormControlType = "checkboxes"
	FormControlTypeRadio      FormControlType = "radio"
	FormControlTypeSwitch     FormControlType = "switch"
	FormControlTypeTextbox    FormControlType = "textbox"
)

// Choice reports whether the type renders from an option list.
func (t FormControlType) Choice() bool {
	switch t {
	case FormControlTypeDropdown, FormControlTypeRadio, FormControlTypeCheckboxes:
		return true
	default:
		return false
	}
}

// DropdownOption pairs the canonical stored value with a display label. Label
// may be empty when the source had nothing to show (for example an entity
// without a friendly_name attribute).
type DropdownOption struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// ItemSource asks descriptor resolution to derive a control's options from the
// host entity registry instead of a literal list.
type ItemSource struct {
	Domain      string `json:"domain" yaml:"domain"`
	DeviceClass string `json:"deviceClass,omitempty" yaml:"deviceClass,omitempty"`
}

// FormControl describes one bindable control. ConfigValue names the
// configuration key the control reads from and writes to.
type FormControl struct {
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	ConfigValue string           `json:"configValue" yaml:"configValue"`
	Type        FormControlType  `json:"type" yaml:"type"`
	Items       []DropdownOption `json:"items,omitempty" yaml:"items,omitempty"`
	CSSClass    string           `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	ItemsFrom   *ItemSource      `json:"itemsFrom,omitempty" yaml:"itemsFrom,omitempty"`
}

// FormControlRow groups controls rendered together under an optional label.
// Control order is rendering order.
type FormControlRow struct {
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	CSSClass string        `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Controls []FormControl `json:"controls" yaml:"controls"`
}
