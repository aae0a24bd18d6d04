package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

type hvacMode string

const (
	hvacHeat hvacMode = "heat"
	hvacCool hvacMode = "cool"
	hvacOff  hvacMode = "off"
)

func TestOptionsFromEnumKeepsDeclarationOrder(t *testing.T) {
	got := model.OptionsFromEnum([]model.EnumMember{
		{Name: "Zeta", Value: "z"},
		{Name: "Alpha", Value: "a"},
	})
	want := []model.DropdownOption{
		{Label: "Zeta", Value: "z"},
		{Label: "Alpha", Value: "a"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumMembersUsesNameLookup(t *testing.T) {
	names := map[hvacMode]string{hvacHeat: "Heat", hvacCool: "Cool", hvacOff: "Off"}
	members := model.EnumMembers(func(m hvacMode) string { return names[m] }, hvacOff, hvacHeat, hvacCool)

	got := model.OptionsFromEnum(members)
	want := []model.DropdownOption{
		{Label: "Off", Value: "off"},
		{Label: "Heat", Value: "heat"},
		{Label: "Cool", Value: "cool"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if got := model.EnumMembers[hvacMode](nil, hvacHeat); got[0].Name != "heat" {
		t.Fatalf("expected value fallback for name, got %q", got[0].Name)
	}
}

func TestFormControlTypeChoice(t *testing.T) {
	for _, typ := range []model.FormControlType{model.FormControlTypeDropdown, model.FormControlTypeRadio, model.FormControlTypeCheckboxes} {
		if !typ.Choice() {
			t.Fatalf("%s should be a choice type", typ)
		}
	}
	for _, typ := range []model.FormControlType{model.FormControlTypeSwitch, model.FormControlTypeTextbox, model.FormControlTypeCheckbox} {
		if typ.Choice() {
			t.Fatalf("%s should not be a choice type", typ)
		}
	}
}
