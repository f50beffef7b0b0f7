package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mavwarf/voxa-build/internal/paths"
	"github.com/Mavwarf/voxa-build/internal/tmpl"
)

// DefaultResourcesDir is where the app's resources live, relative to the
// repository root (and to $(SRCROOT) inside the project).
const DefaultResourcesDir = "Voxa/Resources"

// DefaultMQTTTopic is used when mqtt.broker is set without a topic.
const DefaultMQTTTopic = "voxa-build/patch"

// IDs overrides the project object identifiers the patches anchor on.
// Empty fields keep the Voxa defaults.
type IDs struct {
	PhaseID     string `json:"phase_id,omitempty"`
	IconRef     string `json:"icon_ref,omitempty"`
	IconBuild   string `json:"icon_build,omitempty"`
	AssetsRef   string `json:"assets_ref,omitempty"`
	AssetsBuild string `json:"assets_build,omitempty"`
	GroupID     string `json:"group_id,omitempty"`

	SourcesPhase    string `json:"sources_phase,omitempty"`
	FrameworksPhase string `json:"frameworks_phase,omitempty"`
	ResourcesPhase  string `json:"resources_phase,omitempty"`
}

// MQTT configures publishing of patch reports. Publishing is off while
// Broker is empty.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	Topic    string `json:"topic,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
}

// Config holds the settings shared by mkappicon and pbxpatch.
type Config struct {
	Project      string `json:"project,omitempty"`
	ResourcesDir string `json:"resources_dir,omitempty"`
	IconName     string `json:"icon_name,omitempty"`
	IDs          IDs    `json:"ids,omitempty"`
	History      bool   `json:"history"`
	HistoryPath  string `json:"history_path,omitempty"`
	MQTT         MQTT   `json:"mqtt,omitempty"`

	// Path is the file the config was read from; empty for defaults.
	Path string `json:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		ResourcesDir: DefaultResourcesDir,
		History:      true,
		MQTT:         MQTT{Topic: DefaultMQTTTopic},
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Vars returns the template values for the patches: Voxa defaults with
// any configured overrides applied.
func (c Config) Vars() tmpl.Vars {
	return tmpl.Defaults().Merge(tmpl.Vars{
		IconName:      c.IconName,
		ResourcesPath: filepath.ToSlash(c.ResourcesDir),
		PhaseID:       c.IDs.PhaseID,
		IconRef:       c.IDs.IconRef,
		IconBuild:     c.IDs.IconBuild,
		AssetsRef:     c.IDs.AssetsRef,
		AssetsBuild:   c.IDs.AssetsBuild,
		GroupID:       c.IDs.GroupID,

		SourcesPhase:    c.IDs.SourcesPhase,
		FrameworksPhase: c.IDs.FrameworksPhase,
		ResourcesPhase:  c.IDs.ResourcesPhase,
	})
}

// HistoryFile returns where the run history database lives.
func (c Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	return filepath.Join(paths.DataDir(), paths.HistoryFileName)
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; must exist)
//  2. voxa-build.json next to the running binary
//  3. voxa-build.json in paths.DataDir()
//
// With no file found it returns Default().
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	p := filepath.Join(paths.DataDir(), paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return readConfig(p)
	}

	return Default(), nil
}

// ErrNoProject is returned by ProjectPath when neither the flag nor the
// config names a project file.
var ErrNoProject = errors.New("no project file (use --project or set \"project\" in " + paths.ConfigFileName + ")")

// ProjectPath resolves the project.pbxproj to patch: the flag value wins
// over the config. Relative config paths are taken relative to the config
// file's directory.
func (c Config) ProjectPath(flag string) (string, error) {
	if flag != "" {
		return paths.ProjectFile(flag), nil
	}
	if c.Project == "" {
		return "", ErrNoProject
	}
	p := c.Project
	if !filepath.IsAbs(p) && c.Path != "" {
		p = filepath.Join(filepath.Dir(c.Path), p)
	}
	return paths.ProjectFile(p), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}
