package main

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
)

// moduleLogger builds the process logger at level for one module
func moduleLogger(level, module string) (log15.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewLogger(os.Stderr, lvl).New("module", module), nil
}

// submitJob wires settings into a Submitter, submits job and returns the exit code
func submitJob(settings *Settings, logger log15.Logger, job *JobSpec, dryRun bool) int {
	logger.Info("scheduler started")
	defer logger.Info("scheduler finished")

	if err := job.Resources.Validate(); err != nil {
		logger.Error("invalid resources", "err", err)
		return ExitUsage
	}

	if !dryRun {
		if err := CheckNode(settings.Node); err != nil {
			logger.Error("node check failed", "err", err)
			return ExitSubmission
		}
	}

	backend, err := NewBackend(settings, logger)
	if err != nil {
		logger.Error("backend unavailable", "err", err)
		return ExitCode(err)
	}

	submitter := &Submitter{
		Backend: backend,
		Logger:  logger,
		Binary:  settings.Qsub,
		DryRun:  dryRun,
	}

	if settings.Db != "" && !dryRun {
		history, err := InitHistoryDB(settings.Db)
		if err != nil {
			logger.Warn("submission history disabled", "err", err)
		} else {
			defer history.Close()
			submitter.Recorder = history
		}
	}

	sub, err := submitter.Submit(job)
	if err != nil {
		logger.Error("submission failed", "kind", KindOf(err), "err", err)
		return ExitCode(err)
	}
	if sub.JobID != "" {
		fmt.Println(sub.JobID)
	}
	return ExitOK
}
