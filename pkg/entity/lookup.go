package entity

import (
	"sort"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// ByDomain returns one option per entity in domain, labelled with the
// entity's friendly name. Results are ordered by entity id.
func ByDomain(reg Registry, domain string) []model.DropdownOption {
	return collect(reg, func(id string, _ State) bool {
		return Domain(id) == domain
	})
}

// ByDeviceClass narrows ByDomain to entities whose device_class attribute
// equals deviceClass.
func ByDeviceClass(reg Registry, domain, deviceClass string) []model.DropdownOption {
	return collect(reg, func(id string, state State) bool {
		if Domain(id) != domain {
			return false
		}
		class, ok := state.Attributes[AttrDeviceClass]
		return ok && class == deviceClass
	})
}

// Option formats an entity as a dropdown option.
func Option(id string, state State) model.DropdownOption {
	return model.DropdownOption{
		Label: state.FriendlyName(),
		Value: id,
	}
}

func collect(reg Registry, keep func(string, State) bool) []model.DropdownOption {
	ids := make([]string, 0, len(reg))
	for id, state := range reg {
		if keep(id, state) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	options := make([]model.DropdownOption, 0, len(ids))
	for _, id := range ids {
		options = append(options, Option(id, reg[id]))
	}
	return options
}
