package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"syscall"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Backend hands a fully resolved job to the scheduler and returns its job id
// ("" if the scheduler did not report one).
type Backend interface {
	Name() string
	Submit(job *JobSpec) (string, error)
}

const (
	BackendQsub  = "qsub"
	BackendDRMAA = "drmaa"
)

// NewBackend returns the backend named in the settings
func NewBackend(settings *Settings, logger log15.Logger) (Backend, error) {
	switch settings.Backend {
	case "", BackendQsub:
		return &QsubBackend{Binary: settings.Qsub, Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}, nil
	case BackendDRMAA:
		return newDRMAABackend(logger)
	}
	return nil, fmt.Errorf("unknown backend %q (expected %s or %s)", settings.Backend, BackendQsub, BackendDRMAA)
}

// QsubBackend runs the qsub binary with the job's argument vector. The
// scheduler's output goes to Stdout/Stderr unchanged.
type QsubBackend struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
	Logger log15.Logger
}

func (b *QsubBackend) Name() string { return BackendQsub }

func (b *QsubBackend) binary() string {
	if b.Binary == "" {
		return defaultQsub
	}
	return b.Binary
}

func (b *QsubBackend) Submit(job *JobSpec) (string, error) {
	var out bytes.Buffer
	cmd := exec.Command(b.binary(), job.QsubArgs()...)
	cmd.Stdout = &out
	if b.Stdout != nil {
		cmd.Stdout = io.MultiWriter(b.Stdout, &out)
	}
	cmd.Stderr = b.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode := 1
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				exitCode = ws.ExitStatus()
			}
			if b.Logger != nil {
				b.Logger.Error("qsub exited with non-zero status", "code", exitCode)
			}
			return "", submissionErrorf("qsub", err, "%s exited with status %d", b.binary(), exitCode)
		}
		return "", submissionErrorf("qsub", err, "run %s", b.binary())
	}
	return parseJobID(out.String()), nil
}

var jobIDRe = regexp.MustCompile(`Your job(?:-array)? (\d+)`)

// parseJobID extracts the job id from qsub's confirmation, e.g.
// `Your job-array 4242.1-10:1 ("sweep") has been submitted`.
func parseJobID(output string) string {
	m := jobIDRe.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	return m[1]
}
