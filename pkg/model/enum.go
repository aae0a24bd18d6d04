package model

// EnumMember is one named constant of a closed value set. Go has no runtime
// view of constant names, so callers list members in declaration order.
type EnumMember struct {
	Name  string
	Value string
}

// OptionsFromEnum projects members into dropdown options, using the member
// name as label and its value as value, in the order given.
func OptionsFromEnum(members []EnumMember) []DropdownOption {
	options := make([]DropdownOption, 0, len(members))
	for _, member := range members {
		options = append(options, DropdownOption{
			Label: member.Name,
			Value: member.Value,
		})
	}
	return options
}

// EnumMembers builds members from string-backed constants and a name lookup,
// keeping the order of values.
func EnumMembers[T ~string](name func(T) string, values ...T) []EnumMember {
	members := make([]EnumMember, 0, len(values))
	for _, value := range values {
		label := string(value)
		if name != nil {
			label = name(value)
		}
		members = append(members, EnumMember{Name: label, Value: string(value)})
	}
	return members
}
