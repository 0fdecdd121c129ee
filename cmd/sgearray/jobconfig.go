package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// JobConfig is the per-run config file of the config-driven module
type JobConfig struct {
	Logging struct {
		Level string `yaml:"level" toml:"level"`
	} `yaml:"logging" toml:"logging"`
	Output struct {
		Root   string `yaml:"root" toml:"root"`
		Params string `yaml:"params" toml:"params"`
	} `yaml:"output" toml:"output"`
	Job struct {
		Name  string `yaml:"name" toml:"name"`
		Shell string `yaml:"shell" toml:"shell"`
	} `yaml:"job" toml:"job"`
	Resources Resources `yaml:"resources" toml:"resources"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-" toml:"-"`
}

// LoadJobConfig reads a YAML config, or TOML when the file ends in .toml,
// and validates it.
func LoadJobConfig(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SubmitError{Kind: InputError, Op: "load config", Err: err}
	}

	cfg := &JobConfig{Path: path}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, inputErrorf("load config", err, "parse %s", path)
	}
	if cfg.Job.Shell == "" {
		cfg.Job.Shell = defaultShell
	}
	if err := cfg.Validate(); err != nil {
		return nil, inputErrorf("load config", err, "validate %s", path)
	}
	return cfg, nil
}

// Validate fails on missing required keys and malformed values.
func (c *JobConfig) Validate() error {
	var missing []string
	if c.Output.Root == "" {
		missing = append(missing, "output.root")
	}
	if c.Output.Params == "" {
		missing = append(missing, "output.params")
	}
	if c.Job.Name == "" {
		missing = append(missing, "job.name")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	res := c.ResourcesOver(DefaultResources())
	return res.Validate()
}

// ResourcesOver returns base with the config's resource overrides applied
func (c *JobConfig) ResourcesOver(base Resources) Resources {
	base.merge(c.Resources)
	return base
}
