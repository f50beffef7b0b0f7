package tmpl

import "strings"

// Vars holds the identifiers and names substituted into patch templates.
// The zero value expands every placeholder to an empty string; use Defaults
// for the identifiers of the Voxa project.
type Vars struct {
	IconName      string // {icon_name}
	ResourcesPath string // {resources_path}, relative to $(SRCROOT)
	PhaseID       string // {phase_id}, the shell script build phase
	IconRef       string // {icon_ref}, PBXFileReference of the icon
	IconBuild     string // {icon_build}, PBXBuildFile of the icon
	AssetsRef     string // {assets_ref}
	AssetsBuild   string // {assets_build}
	GroupID       string // {group_id}, the Resources PBXGroup

	// The app target's existing build phases, in order.
	SourcesPhase    string // {sources_phase}
	FrameworksPhase string // {frameworks_phase}
	ResourcesPhase  string // {resources_phase}
}

// Defaults returns the object identifiers used by Voxa.xcodeproj.
func Defaults() Vars {
	return Vars{
		IconName:      "AppIcon.icns",
		ResourcesPath: "Voxa/Resources",
		PhaseID:       "E100000000000000000006",
		IconRef:       "A10000000000000000000C",
		IconBuild:     "B10000000000000000000C",
		AssetsRef:     "A100000000000000000006",
		AssetsBuild:   "B100000000000000000006",
		GroupID:       "C100000000000000000008",

		SourcesPhase:    "E100000000000000000001",
		FrameworksPhase: "E100000000000000000002",
		ResourcesPhase:  "E100000000000000000003",
	}
}

// Merge returns v with every non-empty field of o applied on top.
func (v Vars) Merge(o Vars) Vars {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&v.IconName, o.IconName)
	set(&v.ResourcesPath, o.ResourcesPath)
	set(&v.PhaseID, o.PhaseID)
	set(&v.IconRef, o.IconRef)
	set(&v.IconBuild, o.IconBuild)
	set(&v.AssetsRef, o.AssetsRef)
	set(&v.AssetsBuild, o.AssetsBuild)
	set(&v.GroupID, o.GroupID)
	set(&v.SourcesPhase, o.SourcesPhase)
	set(&v.FrameworksPhase, o.FrameworksPhase)
	set(&v.ResourcesPhase, o.ResourcesPhase)
	return v
}

// Expand replaces template placeholders in s with values from vars.
// Unknown {names} are left untouched, so pbxproj braces and shell
// ${VARS} pass through as-is.
func Expand(s string, vars Vars) string {
	r := strings.NewReplacer(
		"{icon_name}", vars.IconName,
		"{resources_path}", vars.ResourcesPath,
		"{phase_id}", vars.PhaseID,
		"{icon_ref}", vars.IconRef,
		"{icon_build}", vars.IconBuild,
		"{assets_ref}", vars.AssetsRef,
		"{assets_build}", vars.AssetsBuild,
		"{group_id}", vars.GroupID,
		"{sources_phase}", vars.SourcesPhase,
		"{frameworks_phase}", vars.FrameworksPhase,
		"{resources_phase}", vars.ResourcesPhase,
	)
	return r.Replace(s)
}
