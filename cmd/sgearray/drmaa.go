//go:build drmaa

package main

import (
	"strings"

	"github.com/dgruber/drmaa"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// DRMAABackend submits through the DRMAA library of the cluster
// (LD_LIBRARY_PATH must point at $SGE_ROOT/lib/<arch>).
type DRMAABackend struct {
	Logger log15.Logger
}

func newDRMAABackend(logger log15.Logger) (Backend, error) {
	return &DRMAABackend{Logger: logger}, nil
}

func (b *DRMAABackend) Name() string { return BackendDRMAA }

func (b *DRMAABackend) Submit(job *JobSpec) (string, error) {
	if len(job.Command) == 0 {
		return "", submissionErrorf("drmaa", errors.New("empty command"), "build job template")
	}

	session, err := drmaa.MakeSession()
	if err != nil {
		return "", submissionErrorf("drmaa", err, "create DRMAA session")
	}
	defer session.Exit()

	jt, err := session.AllocateJobTemplate()
	if err != nil {
		return "", submissionErrorf("drmaa", err, "allocate job template")
	}
	defer session.DeleteJobTemplate(&jt)

	taskArgs := job.TaskArgs()
	if err := jt.SetRemoteCommand(taskArgs[0]); err != nil {
		return "", submissionErrorf("drmaa", err, "set remote command")
	}
	if err := jt.SetArgs(taskArgs[1:]); err != nil {
		return "", submissionErrorf("drmaa", err, "set args")
	}
	if err := jt.SetJobName(job.Name); err != nil {
		return "", submissionErrorf("drmaa", err, "set job name")
	}
	if err := jt.SetWD(job.WorkDir); err != nil {
		return "", submissionErrorf("drmaa", err, "set working directory")
	}
	nativeSpec := strings.Join(job.NativeArgs(), " ")
	if err := jt.SetNativeSpecification(nativeSpec); err != nil {
		return "", submissionErrorf("drmaa", err, "set native specification")
	}
	b.Logger.Debug("drmaa job template", "native", nativeSpec, "tasks", job.Tasks)

	ids, err := session.RunBulkJobs(&jt, 1, job.Tasks, 1)
	if err != nil {
		return "", submissionErrorf("drmaa", err, "run bulk job")
	}
	if len(ids) == 0 {
		return "", nil
	}
	// task ids look like "4242.1"
	return strings.SplitN(ids[0], ".", 2)[0], nil
}
