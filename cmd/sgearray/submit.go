package main

import (
	"os"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Submission is the outcome of a successful Submit
type Submission struct {
	JobID   string
	Tasks   int
	Command string
	Backend string
	DryRun  bool
}

// Recorder stores submissions; the sqlite history implements it.
type Recorder interface {
	Record(job *JobSpec, sub *Submission) error
}

// Submitter runs the submission pipeline: create the working directory,
// count the parameter rows, build the qsub command and hand it to Backend.
type Submitter struct {
	Backend  Backend
	Logger   log15.Logger
	Recorder Recorder
	// Binary is only used to render the logged command line.
	Binary string
	DryRun bool
}

func (s *Submitter) binary() string {
	if s.Binary == "" {
		return defaultQsub
	}
	return s.Binary
}

// Submit submits job as an array job with one task per parameter row.
// job.Tasks is overwritten with the row count.
func (s *Submitter) Submit(job *JobSpec) (*Submission, error) {
	logger := s.Logger.New("job", job.Name)

	if s.DryRun {
		logger.Info("dry run, working directory not created", "workdir", job.WorkDir)
	} else if err := os.MkdirAll(job.WorkDir, 0755); err != nil {
		return nil, filesystemErrorf("create workdir", err, "mkdir %s", job.WorkDir)
	}

	n, err := CountRows(job.Params)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, inputErrorf("read params", errors.New("no data rows"), "parse %s", job.Params)
	}
	job.Tasks = n
	logger.Info("scheduling tasks", "tasks", n)

	logResolved(logger, job)

	sub := &Submission{
		Tasks:   n,
		Command: job.CommandLine(s.binary()),
		Backend: s.Backend.Name(),
		DryRun:  s.DryRun,
	}
	logger.Info("scheduling job", "command", sub.Command)

	if s.DryRun {
		logger.Info("dry run, job not submitted")
		return sub, nil
	}

	sub.JobID, err = s.Backend.Submit(job)
	if err != nil {
		return nil, err
	}
	logger.Info("job submitted", "jobid", sub.JobID, "backend", sub.Backend)

	if s.Recorder != nil {
		if err := s.Recorder.Record(job, sub); err != nil {
			logger.Warn("could not record submission", "err", err)
		}
	}
	return sub, nil
}

func logResolved(logger log15.Logger, job *JobSpec) {
	logger.Info("resolved", "key", "name", "value", job.Name)
	logger.Info("resolved", "key", "workdir", "value", job.WorkDir)
	logger.Info("resolved", "key", "params", "value", job.Params)
	logger.Info("resolved", "key", "max_procs", "value", job.Procs)
	logger.Info("resolved", "key", "pe", "value", job.pe())
	if job.Shell != "" {
		logger.Info("resolved", "key", "shell", "value", job.Shell)
	}
	for _, l := range job.Resources.Limits() {
		logger.Info("resolved", "key", l.Key, "value", l.Value)
	}
	logger.Info("resolved", "key", "command", "value", strings.Join(job.Command, " "))
	if len(job.Trailing) > 0 {
		logger.Info("resolved", "key", "trailing", "value", strings.Join(job.Trailing, " "))
	}
}
