package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts used to name the per-day working directory
const (
	DateDash       = "2006-01-02"
	DateUnderscore = "2006_01_02"
)

const (
	defaultQsub  = "qsub"
	defaultPE    = "mpi"
	defaultShell = "/bin/bash"
)

// Resources holds the per-task limits requested from the scheduler
type Resources struct {
	WallClock string `yaml:"h_rt" toml:"h_rt"`
	Mem       string `yaml:"mem" toml:"mem"`
	Tmpfs     string `yaml:"tmpfs" toml:"tmpfs"`
	MaxProcs  int    `yaml:"-" toml:"-"`
}

// DefaultResources returns the limits every job starts from.
func DefaultResources() Resources {
	return Resources{
		WallClock: "23:59:59",
		Mem:       "2G",
		Tmpfs:     "20G",
		MaxProcs:  1,
	}
}

// ResourceLimit is one "-l key=value" request
type ResourceLimit struct {
	Key   string
	Value string
}

// Limits returns the resource requests in the order they are passed to qsub.
func (r Resources) Limits() []ResourceLimit {
	return []ResourceLimit{
		{"h_rt", r.WallClock},
		{"mem", r.Mem},
		{"tmpfs", r.Tmpfs},
	}
}

// merge overrides r with the non-empty fields of o
func (r *Resources) merge(o Resources) {
	if o.WallClock != "" {
		r.WallClock = o.WallClock
	}
	if o.Mem != "" {
		r.Mem = o.Mem
	}
	if o.Tmpfs != "" {
		r.Tmpfs = o.Tmpfs
	}
	if o.MaxProcs > 0 {
		r.MaxProcs = o.MaxProcs
	}
}

var (
	wallClockRe = regexp.MustCompile(`^\d+:[0-5]\d:[0-5]\d$`)
	memoryRe    = regexp.MustCompile(`^\d+(?:\.\d+)?[KkMmGgTt]?$`)
)

// Validate checks the limit formats: wall clock as HH:MM:SS and memory
// sizes as a number with an optional K/M/G/T suffix.
func (r Resources) Validate() error {
	if !wallClockRe.MatchString(r.WallClock) {
		return fmt.Errorf("invalid h_rt %q (expected HH:MM:SS)", r.WallClock)
	}
	if !memoryRe.MatchString(r.Mem) {
		return fmt.Errorf("invalid mem %q (expected e.g. 2G, 512M)", r.Mem)
	}
	if !memoryRe.MatchString(r.Tmpfs) {
		return fmt.Errorf("invalid tmpfs %q (expected e.g. 20G)", r.Tmpfs)
	}
	if r.MaxProcs < 1 {
		return fmt.Errorf("max procs must be at least 1, got %d", r.MaxProcs)
	}
	return nil
}

// WorkDir returns the per-day working directory under prefix.
func WorkDir(prefix string, now time.Time, layout string) string {
	return filepath.Join(prefix, now.Format(layout))
}

// JobSpec describes one array job submission
type JobSpec struct {
	Name      string
	WorkDir   string
	Params    string
	Procs     int
	PE        string
	Shell     string
	Command   []string
	Trailing  []string
	Resources Resources

	// Tasks is the number of array tasks; set from the parameter table.
	Tasks int
}

// ArrayRange is the -t argument.
func (j *JobSpec) ArrayRange() string {
	return fmt.Sprintf("1-%d", j.Tasks)
}

func (j *JobSpec) pe() string {
	if j.PE == "" {
		return defaultPE
	}
	return j.PE
}

// NativeArgs returns the scheduler options that are not part of the
// array/name/workdir control, i.e. what DRMAA takes as native specification.
func (j *JobSpec) NativeArgs() []string {
	args := []string{"-pe", j.pe(), strconv.Itoa(j.Procs)}
	if j.Shell != "" {
		args = append(args, "-S", j.Shell)
	}
	for _, l := range j.Resources.Limits() {
		args = append(args, "-l", l.Key+"="+l.Value)
	}
	return args
}

// TaskArgs returns what each array task runs: the user command followed by
// the parameter file and any trailing arguments.
func (j *JobSpec) TaskArgs() []string {
	args := make([]string, 0, len(j.Command)+1+len(j.Trailing))
	args = append(args, j.Command...)
	args = append(args, j.Params)
	args = append(args, j.Trailing...)
	return args
}

// QsubArgs returns the complete qsub argument vector (without the binary).
func (j *JobSpec) QsubArgs() []string {
	args := []string{
		"-N", j.Name,
		"-wd", j.WorkDir,
		"-t", j.ArrayRange(),
	}
	args = append(args, j.NativeArgs()...)
	return append(args, j.TaskArgs()...)
}

// CommandLine renders binary plus QsubArgs as one line for logging.
func (j *JobSpec) CommandLine(binary string) string {
	return strings.Join(append([]string{binary}, j.QsubArgs()...), " ")
}
