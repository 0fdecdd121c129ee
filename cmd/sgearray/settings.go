package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFile = "sgearray.yaml"

// SettingsPaths returns the settings files in increasing precedence: the one
// next to the executable, then ~/.sgearray/sgearray.yaml.
func SettingsPaths() []string {
	var paths []string
	if exePath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exePath), settingsFile))
	}
	if usr, err := user.Current(); err == nil {
		paths = append(paths, filepath.Join(usr.HomeDir, ".sgearray", settingsFile))
	}
	return paths
}

func defaultSettings() *Settings {
	s := &Settings{
		Qsub:    defaultQsub,
		Backend: BackendQsub,
		PE:      defaultPE,
		Node:    []string{},
	}
	if usr, err := user.Current(); err == nil {
		s.Db = filepath.Join(usr.HomeDir, ".sgearray", "sgearray.db")
	}
	s.Logging.Level = "info"
	return s
}

// LoadSettings starts from the defaults and merges every existing file in
// paths over them, later files taking precedence. Missing files are skipped.
func LoadSettings(paths ...string) (*Settings, error) {
	settings := defaultSettings()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %v", path, err)
		}
		var fileSettings Settings
		if err := yaml.Unmarshal(data, &fileSettings); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %v", path, err)
		}
		mergeSettings(settings, &fileSettings)
	}
	if _, err := ParseLevel(settings.Logging.Level); err != nil {
		return nil, err
	}
	return settings, nil
}

// mergeSettings merges source into target
// Only non-empty values from source are merged
func mergeSettings(target, source *Settings) {
	if source.Db != "" {
		target.Db = source.Db
	}
	if source.Qsub != "" {
		target.Qsub = source.Qsub
	}
	if source.Backend != "" {
		target.Backend = source.Backend
	}
	if source.PE != "" {
		target.PE = source.PE
	}
	if source.Shell != "" {
		target.Shell = source.Shell
	}
	if len(source.Node) > 0 {
		target.Node = source.Node
	}
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
}

// CheckNode checks if current node is in the allowed submit hosts
// If configNodes is empty, no restriction is applied
func CheckNode(configNodes []string) error {
	if len(configNodes) == 0 {
		return nil
	}

	currentNode, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get hostname: %v", err)
	}
	return checkNodeName(currentNode, configNodes)
}

func checkNodeName(currentNode string, configNodes []string) error {
	for _, allowedNode := range configNodes {
		if currentNode == allowedNode {
			return nil
		}
	}
	return fmt.Errorf("current node (%s) is not in allowed nodes list: %v. Please submit from one of the allowed nodes", currentNode, configNodes)
}
