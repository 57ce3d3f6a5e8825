package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/settings.yaml
var defaultSettings string

// Settings represents the YAML configuration structure
type Settings struct {
	OutputDirectory       string   `yaml:"output_directory"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	HeadTimeoutSeconds    int      `yaml:"head_timeout_seconds"`
	MinDelaySeconds       float64  `yaml:"min_delay_seconds"`
	MaxDelaySeconds       float64  `yaml:"max_delay_seconds"`
	MaxFilenameLength     int      `yaml:"max_filename_length"`
	ConnectivityCheckURL  string   `yaml:"connectivity_check_url"`
	UserAgents            []string `yaml:"user_agents"`
	SitemapSuffixes       []string `yaml:"sitemap_suffixes"`
}

// LoadSettings loads settings from a YAML file. An empty path selects the
// embedded defaults; an explicit path must exist and parse.
func LoadSettings(path string) (*Settings, error) {
	data := []byte(defaultSettings)
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("reading settings file %s: %v", path, err)}
		}
		data = fileData
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("parsing settings YAML: %v", err)}
	}

	settings.normalize()
	return &settings, nil
}

// normalize fills gaps in a user-supplied settings file from the embedded
// defaults so a partial file stays usable.
func (s *Settings) normalize() {
	var defaults Settings
	// The embedded file ships with the binary; failing to parse it is a bug.
	if err := yaml.Unmarshal([]byte(defaultSettings), &defaults); err != nil {
		log.Fatalf("parsing embedded default settings: %v", err)
	}

	if s.OutputDirectory == "" {
		s.OutputDirectory = defaults.OutputDirectory
	}
	if s.RequestTimeoutSeconds <= 0 {
		s.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if s.HeadTimeoutSeconds <= 0 {
		s.HeadTimeoutSeconds = defaults.HeadTimeoutSeconds
	}
	if s.MinDelaySeconds < 0 {
		s.MinDelaySeconds = defaults.MinDelaySeconds
	}
	if s.MaxDelaySeconds < s.MinDelaySeconds {
		log.Printf("Warning: max_delay_seconds %.1f below min_delay_seconds %.1f, using min", s.MaxDelaySeconds, s.MinDelaySeconds)
		s.MaxDelaySeconds = s.MinDelaySeconds
	}
	if s.MaxFilenameLength <= 0 {
		s.MaxFilenameLength = defaults.MaxFilenameLength
	}
	if s.ConnectivityCheckURL == "" {
		s.ConnectivityCheckURL = defaults.ConnectivityCheckURL
	}
	if len(s.UserAgents) == 0 {
		s.UserAgents = defaults.UserAgents
	}
	if len(s.SitemapSuffixes) == 0 {
		s.SitemapSuffixes = defaults.SitemapSuffixes
	}
}
