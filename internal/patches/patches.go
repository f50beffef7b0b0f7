// Package patches holds the project.pbxproj edits that wire the pre-built
// AppIcon.icns into the Voxa build. Texts are templates expanded from
// tmpl.Vars, so the identifiers can be overridden from config.
package patches

import (
	"regexp"
	"strings"

	"github.com/Mavwarf/voxa-build/internal/pbxproj"
	"github.com/Mavwarf/voxa-build/internal/shell"
	"github.com/Mavwarf/voxa-build/internal/tmpl"
)

// Plan names, as recorded in history and reports.
const (
	BuildPhase = "build-phase"
	IconRef    = "icon-ref"
)

// Section markers Xcode writes around each object type.
const (
	resourcesSectionBegin = "/* Begin PBXResourcesBuildPhase section */"
	shellSectionBegin     = "/* Begin PBXShellScriptBuildPhase section */"
	shellSectionEnd       = "/* End PBXShellScriptBuildPhase section */"
)

const shellPhaseEntry = "\t\t{phase_id} /* Copy {icon_name} */ = {\n" +
	"\t\t\tisa = PBXShellScriptBuildPhase;\n" +
	"\t\t\tbuildActionMask = 2147483647;\n" +
	"\t\t\tfiles = (\n" +
	"\t\t\t);\n" +
	"\t\t\tinputFileListPaths = (\n" +
	"\t\t\t);\n" +
	"\t\t\tinputPaths = (\n" +
	"\t\t\t\t{input_path},\n" +
	"\t\t\t);\n" +
	"\t\t\toutputFileListPaths = (\n" +
	"\t\t\t);\n" +
	"\t\t\toutputPaths = (\n" +
	"\t\t\t\t{output_path},\n" +
	"\t\t\t);\n" +
	"\t\t\trunOnlyForDeploymentPostprocessing = 0;\n" +
	"\t\t\tshellPath = /bin/sh;\n" +
	"\t\t\tshellScript = {shell_script};\n" +
	"\t\t\tshowEnvVarsInLog = 0;\n" +
	"\t\t};\n"

const targetBuildPhases = "buildPhases = (\n" +
	"\t\t\t\t{sources_phase} /* Sources */,\n" +
	"\t\t\t\t{frameworks_phase} /* Frameworks */,\n" +
	"\t\t\t\t{resources_phase} /* Resources */,\n" +
	"\t\t\t);"

const phaseListEntry = "\t\t\t\t{phase_id} /* Copy {icon_name} */,\n"

// ShellPhaseEntry returns the PBXShellScriptBuildPhase object that copies
// the icon into the built product's resources folder.
func ShellPhaseEntry(v tmpl.Vars) string {
	script := shell.CopyCommand(
		"${SRCROOT}/"+v.ResourcesPath+"/"+v.IconName,
		"${BUILT_PRODUCTS_DIR}/${UNLOCALIZED_RESOURCES_FOLDER_PATH}/"+v.IconName,
	)
	// Quoted values are filled after Expand so nothing in them is
	// mistaken for a placeholder.
	return strings.NewReplacer(
		"{input_path}", shell.QuotePBX("$(SRCROOT)/"+v.ResourcesPath+"/"+v.IconName),
		"{output_path}", shell.QuotePBX("$(BUILT_PRODUCTS_DIR)/$(UNLOCALIZED_RESOURCES_FOLDER_PATH)/"+v.IconName),
		"{shell_script}", shell.QuotePBX(script),
	).Replace(tmpl.Expand(shellPhaseEntry, v))
}

// BuildPhasePlan adds a shell script phase copying the icon and registers
// it on the app target after the Resources phase.
func BuildPhasePlan(v tmpl.Vars) pbxproj.Plan {
	entry := ShellPhaseEntry(v)
	present := tmpl.Expand("{phase_id} /* Copy {icon_name} */ = {", v)

	oldPhases := tmpl.Expand(targetBuildPhases, v)
	newPhases := oldPhases[:len(oldPhases)-len("\t\t\t);")] +
		tmpl.Expand(phaseListEntry, v) + "\t\t\t);"

	return pbxproj.Plan{Name: BuildPhase, Steps: []pbxproj.Step{
		pbxproj.FirstOf{Label: "add shell script phase", Steps: []pbxproj.Step{
			// Existing section: add the entry to it.
			pbxproj.InsertBefore{Anchor: shellSectionEnd, Text: entry, Present: present},
			// No section yet: create one ahead of the Resources phases.
			pbxproj.InsertBefore{
				Anchor:  resourcesSectionBegin,
				Text:    shellSectionBegin + "\n" + entry + shellSectionEnd + "\n\n",
				Present: present,
			},
		}},
		pbxproj.ReplaceLiteral{Label: "register phase on target", Old: oldPhases, New: newPhases},
	}}
}

// IconRefPlan registers the icon as a tracked resource: a file reference,
// a child of the Resources group, an entry in the Resources build phase and
// its build file. It also drops ASSETCATALOG_COMPILER_APPICON_NAME so the
// bundle falls back to CFBundleIconFile.
func IconRefPlan(v tmpl.Vars) pbxproj.Plan {
	x := func(s string) string { return tmpl.Expand(s, v) }
	q := regexp.QuoteMeta

	assetsFileRef := x(`{assets_ref} /* Assets.xcassets */ = {isa = PBXFileReference; lastKnownFileType = folder.assetcatalog; path = Assets.xcassets; sourceTree = "<group>"; };`)
	iconFileRef := x(`{icon_ref} /* {icon_name} */ = {isa = PBXFileReference; lastKnownFileType = image.icns; path = `) +
		shell.PBXString(v.IconName) + `; sourceTree = "<group>"; };`

	assetsChild := x("{assets_ref} /* Assets.xcassets */,")
	iconChild := x("{icon_ref} /* {icon_name} */,")
	groupPattern := regexp.MustCompile(`(` + q(x("{group_id} /* Resources */ = {")) +
		`[^}]*children = \(\s*)` + q(assetsChild))

	assetsPhaseFile := x("{assets_build} /* Assets.xcassets in Resources */,")
	iconPhaseFile := x("{icon_build} /* {icon_name} in Resources */,")
	phasePattern := regexp.MustCompile(`(` + q(assetsPhaseFile) + `)`)

	assetsBuildFile := x("{assets_build} /* Assets.xcassets in Resources */ = {isa = PBXBuildFile; fileRef = {assets_ref} /* Assets.xcassets */; };")
	iconBuildFile := x("{icon_build} /* {icon_name} in Resources */ = {isa = PBXBuildFile; fileRef = {icon_ref} /* {icon_name} */; };")

	return pbxproj.Plan{Name: IconRef, Steps: []pbxproj.Step{
		pbxproj.ReplaceLiteral{
			Label: "add file reference",
			Old:   assetsFileRef,
			New:   assetsFileRef + "\n\t\t" + iconFileRef,
		},
		pbxproj.ReplaceRegexp{
			Label:       "add to resources group",
			Pattern:     groupPattern,
			Replacement: "${1}" + pbxproj.Literal(assetsChild+"\n\t\t\t\t"+iconChild),
			Present:     iconChild,
			Hint:        x("{group_id} /* Resources */ = {"),
		},
		pbxproj.ReplaceRegexp{
			Label:       "add to resources build phase",
			Pattern:     phasePattern,
			Replacement: "${1}" + pbxproj.Literal("\n\t\t\t\t"+iconPhaseFile),
			Present:     iconPhaseFile,
			Hint:        assetsPhaseFile,
		},
		pbxproj.ReplaceLiteral{
			Label: "add build file",
			Old:   assetsBuildFile,
			New:   assetsBuildFile + "\n\t\t" + iconBuildFile,
		},
		pbxproj.DeleteLiteral{
			Label: "remove app icon setting",
			Text:  "\n\t\t\t\tASSETCATALOG_COMPILER_APPICON_NAME = AppIcon;",
		},
	}}
}

// ForName returns the plan registered under name.
func ForName(name string, v tmpl.Vars) (pbxproj.Plan, bool) {
	switch name {
	case BuildPhase:
		return BuildPhasePlan(v), true
	case IconRef:
		return IconRefPlan(v), true
	}
	return pbxproj.Plan{}, false
}
