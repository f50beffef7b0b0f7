package tmpl

import "testing"

func TestExpand(t *testing.T) {
	d := Defaults()
	tests := []struct {
		name string
		s    string
		vars Vars
		want string
	}{
		{"no placeholders", "Hello", d, "Hello"},
		{"icon name", "path = {icon_name};", d, "path = AppIcon.icns;"},
		{"ids", "{icon_build} /* {icon_name} in Resources */,", d, "B10000000000000000000C /* AppIcon.icns in Resources */,"},
		{"resources", `"$(SRCROOT)/{resources_path}/{icon_name}"`, d, `"$(SRCROOT)/Voxa/Resources/AppIcon.icns"`},
		{"pbx braces untouched", "{isa = PBXBuildFile; fileRef = {assets_ref}; }", d, "{isa = PBXBuildFile; fileRef = A100000000000000000006; }"},
		{"shell vars untouched", "${SRCROOT}/{icon_name}", d, "${SRCROOT}/AppIcon.icns"},
		{"unknown placeholder", "{profile}", d, "{profile}"},
		{"empty vars", "{group_id}", Vars{}, ""},
		{"all ids", "{phase_id} {icon_ref} {assets_build} {group_id}", d,
			"E100000000000000000006 A10000000000000000000C B100000000000000000006 C100000000000000000008"},
		{"target phases", "{sources_phase} {frameworks_phase} {resources_phase}", d,
			"E100000000000000000001 E100000000000000000002 E100000000000000000003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.s, tt.vars); got != tt.want {
				t.Errorf("Expand(%q, %+v) = %q, want %q", tt.s, tt.vars, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	got := Defaults().Merge(Vars{IconName: "Other.icns", GroupID: "G1"})
	if got.IconName != "Other.icns" {
		t.Errorf("IconName = %q, want Other.icns", got.IconName)
	}
	if got.GroupID != "G1" {
		t.Errorf("GroupID = %q, want G1", got.GroupID)
	}
	if got := Defaults().Merge(Vars{ResourcesPhase: "E1FF"}); got.ResourcesPhase != "E1FF" || got.SourcesPhase != Defaults().SourcesPhase {
		t.Errorf("phase merge = %+v", got)
	}
	if got.PhaseID != Defaults().PhaseID {
		t.Errorf("PhaseID = %q, want default", got.PhaseID)
	}
}
