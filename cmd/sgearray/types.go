package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NodeList holds the submit hosts. In YAML it is either a list or a single
// string, where the string may name several hosts separated by commas.
type NodeList []string

func (n *NodeList) UnmarshalYAML(value *yaml.Node) error {
	hosts := NodeList{}
	switch value.Kind {
	case yaml.ScalarNode:
		hosts = hosts.add(strings.Split(value.Value, ",")...)
	case yaml.SequenceNode:
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: node entries must be host names", item.Line)
			}
			hosts = hosts.add(item.Value)
		}
	default:
		return fmt.Errorf("line %d: node must be a host name or a list of host names", value.Line)
	}
	*n = hosts
	return nil
}

// add appends the trimmed, non-empty names
func (n NodeList) add(names ...string) NodeList {
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			n = append(n, name)
		}
	}
	return n
}

// Settings is the tool configuration read from sgearray.yaml
type Settings struct {
	Db      string   `yaml:"db"`
	Qsub    string   `yaml:"qsub"`
	Backend string   `yaml:"backend"`
	PE      string   `yaml:"pe"`
	Shell   string   `yaml:"shell"`
	Node    NodeList `yaml:"node"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// HistoryDB is the sqlite store of past submissions
type HistoryDB struct {
	Db *sql.DB
}

// SubmissionRecord is one row of the submissions table
type SubmissionRecord struct {
	ID         int
	User       string
	Name       string
	WorkDir    string
	Params     string
	Tasks      int
	Procs      int
	Backend    string
	JobID      sql.NullString
	Command    string
	SubmitTime time.Time
}
