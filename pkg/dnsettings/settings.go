package dnsettings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filetug/dirnav/pkg/fsutils"
)

// Default settings. See [Settings] for field descriptions.
const (
	DefaultLogLevel       = "info"
	DefaultLogFile        = UserDir + "/dirnav.log"
	DefaultMouse          = true
	DefaultShowChildCount = true
	DefaultHighlightStyle = "dracula"
)

// Settings configure the terminal browser and logging. Navigation state itself is never persisted.
type Settings struct {
	LogLevel       string // trace, debug, info, warn, error or off (Default info)
	LogFile        string // Log destination; "-" writes to stderr (Default ~/.dirnav/dirnav.log)
	Mouse          bool   // Enable mouse clicks in the listing (Default true)
	ShowChildCount bool   // Show the number of children next to each directory (Default true)
	HighlightStyle string // chroma style used by the state inspector (Default dracula)
}

// Override uses pointer fields to distinguish between unset and zero values
// when loading partial settings. See [Settings] for field descriptions.
type Override struct {
	LogLevel       *string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFile        *string `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	Mouse          *bool   `yaml:"mouse,omitempty" json:"mouse,omitempty"`
	ShowChildCount *bool   `yaml:"show_child_count,omitempty" json:"show_child_count,omitempty"`
	HighlightStyle *string `yaml:"highlight_style,omitempty" json:"highlight_style,omitempty"`
}

func NewDefaultSettings() *Settings {
	return &Settings{
		LogLevel:       DefaultLogLevel,
		LogFile:        DefaultLogFile,
		Mouse:          DefaultMouse,
		ShowChildCount: DefaultShowChildCount,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// Merge applies non-nil values from override onto these settings.
func (s *Settings) Merge(override *Override) {
	if override == nil {
		return
	}
	if override.LogLevel != nil {
		s.LogLevel = *override.LogLevel
	}
	if override.LogFile != nil {
		s.LogFile = *override.LogFile
	}
	if override.Mouse != nil {
		s.Mouse = *override.Mouse
	}
	if override.ShowChildCount != nil {
		s.ShowChildCount = *override.ShowChildCount
	}
	if override.HighlightStyle != nil {
		s.HighlightStyle = *override.HighlightStyle
	}
}

// LogFilePath returns LogFile with a leading ~ expanded.
func (s *Settings) LogFilePath() string {
	return fsutils.ExpandHome(s.LogFile)
}

var readYAML = fsutils.ReadYAMLFile
var readJSON = fsutils.ReadJSONFile

// LoadOverrideFile reads overrides from a .yaml, .yml or .json file.
// A missing file is an error only when required is set.
func LoadOverrideFile(path string, required bool) (*Override, error) {
	var override Override
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = readYAML(path, required, &override)
	case ".json":
		err = readJSON(path, required, &override)
	default:
		return nil, fmt.Errorf("unsupported settings file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return &override, nil
}

// Load returns defaults merged with the file at path. An empty path means the
// optional default location under the user directory.
func Load(path string) (*Settings, error) {
	settings := NewDefaultSettings()
	required := path != ""
	if !required {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return settings, nil
		}
	}
	override, err := LoadOverrideFile(fsutils.ExpandHome(path), required)
	if err != nil {
		return settings, err
	}
	settings.Merge(override)
	return settings, nil
}
