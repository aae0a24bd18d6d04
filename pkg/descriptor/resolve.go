package descriptor

import (
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

// Resolve returns a copy of rows where controls declaring itemsFrom and no
// literal items get their options from reg. Rows without item sources are
// returned unchanged.
func Resolve(rows []model.FormControlRow, reg entity.Registry) []model.FormControlRow {
	out := make([]model.FormControlRow, len(rows))
	for i, row := range rows {
		controls := make([]model.FormControl, len(row.Controls))
		for j, control := range row.Controls {
			if control.ItemsFrom != nil && control.Items == nil {
				control.Items = itemsFor(*control.ItemsFrom, reg)
			}
			controls[j] = control
		}
		row.Controls = controls
		out[i] = row
	}
	return out
}

func itemsFor(src model.ItemSource, reg entity.Registry) []model.DropdownOption {
	if src.DeviceClass != "" {
		return entity.ByDeviceClass(reg, src.Domain, src.DeviceClass)
	}
	return entity.ByDomain(reg, src.Domain)
}
