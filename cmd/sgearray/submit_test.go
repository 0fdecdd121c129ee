package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func newJob(t *testing.T, prefix, params string) *JobSpec {
	t.Helper()
	return &JobSpec{
		Name:      "sweep",
		WorkDir:   WorkDir(prefix, time.Date(2024, time.January, 5, 9, 0, 0, 0, time.Local), DateDash),
		Params:    params,
		Procs:     1,
		Command:   []string{"python", "run.py"},
		Resources: DefaultResources(),
	}
}

func TestSubmit(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "jobs")
	params := writeParams(t, dir, 10)
	backend := &fakeBackend{id: "4242"}
	recorder := &fakeRecorder{}
	var logs bytes.Buffer
	s := &Submitter{Backend: backend, Logger: testLogger(&logs), Recorder: recorder}

	job := newJob(t, prefix, params)
	sub, err := s.Submit(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.calls != 1 {
		t.Fatalf("got %d backend calls, wanted 1", backend.calls)
	}
	wantDir := filepath.Join(prefix, "2024-01-05")
	if fi, err := os.Stat(wantDir); err != nil || !fi.IsDir() {
		t.Errorf("working dir %s was not created: %v", wantDir, err)
	}
	args := strings.Join(backend.args, " ")
	for _, want := range []string{"-t 1-10", "-wd " + wantDir, "-N sweep"} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q do not contain %q", args, want)
		}
	}
	if sub.JobID != "4242" || sub.Tasks != 10 || sub.Backend != "fake" {
		t.Errorf("unexpected submission %+v", sub)
	}
	if !strings.HasPrefix(sub.Command, "qsub -N sweep") {
		t.Errorf("unexpected command %q", sub.Command)
	}
	if len(recorder.subs) != 1 {
		t.Errorf("got %d recorded submissions, wanted 1", len(recorder.subs))
	}
	for _, want := range []string{"key=h_rt", "key=mem", "key=tmpfs", "key=workdir", "scheduling job"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs do not contain %q:\n%s", want, logs.String())
		}
	}
}

func TestSubmitMissingParams(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{}
	s := &Submitter{Backend: backend, Logger: testLogger(nil)}

	_, err := s.Submit(newJob(t, dir, filepath.Join(dir, "missing.csv")))
	if KindOf(err) != InputError {
		t.Fatalf("got %v, wanted an InputError", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times", backend.calls)
	}
}

func TestSubmitNoRows(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{}
	s := &Submitter{Backend: backend, Logger: testLogger(nil)}

	_, err := s.Submit(newJob(t, dir, writeParams(t, dir, 0)))
	if KindOf(err) != InputError {
		t.Fatalf("got %v, wanted an InputError", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times", backend.calls)
	}
}

func TestSubmitWorkDirNotCreatable(t *testing.T) {
	dir := t.TempDir()
	// a regular file where the prefix directory should be
	blocker := writeFile(t, dir, "blocker", "")
	backend := &fakeBackend{}
	s := &Submitter{Backend: backend, Logger: testLogger(nil)}

	_, err := s.Submit(newJob(t, blocker, writeParams(t, dir, 3)))
	if KindOf(err) != FilesystemError {
		t.Fatalf("got %v, wanted a FilesystemError", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times", backend.calls)
	}
}

func TestSubmitDryRun(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{}
	recorder := &fakeRecorder{}
	s := &Submitter{Backend: backend, Logger: testLogger(nil), Recorder: recorder, DryRun: true}

	job := newJob(t, filepath.Join(dir, "jobs"), writeParams(t, dir, 3))
	sub, err := s.Submit(job)
	if err != nil {
		t.Fatal(err)
	}
	if !sub.DryRun || sub.Tasks != 3 {
		t.Errorf("unexpected submission %+v", sub)
	}
	if backend.calls != 0 || len(recorder.subs) != 0 {
		t.Errorf("dry run reached the backend or recorder")
	}
	if _, err := os.Stat(job.WorkDir); !os.IsNotExist(err) {
		t.Errorf("dry run created %s (stat err %v)", job.WorkDir, err)
	}
}

func TestSubmitBackendError(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{err: submissionErrorf("qsub", errors.New("denied"), "run qsub")}
	recorder := &fakeRecorder{}
	s := &Submitter{Backend: backend, Logger: testLogger(nil), Recorder: recorder}

	_, err := s.Submit(newJob(t, dir, writeParams(t, dir, 3)))
	if KindOf(err) != SubmissionError {
		t.Fatalf("got %v, wanted a SubmissionError", err)
	}
	if len(recorder.subs) != 0 {
		t.Error("failed submission was recorded")
	}
}

func TestSubmitRecorderErrorIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	s := &Submitter{
		Backend:  &fakeBackend{id: "1"},
		Logger:   testLogger(nil),
		Recorder: &fakeRecorder{err: errors.New("disk full")},
	}
	if _, err := s.Submit(newJob(t, dir, writeParams(t, dir, 3))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQsubBackend(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	b := &QsubBackend{Binary: fakeQsub(t, dir, 0), Stdout: &stdout, Logger: testLogger(nil)}

	job := testJob()
	job.Tasks = 3
	id, err := b.Submit(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "4242" {
		t.Errorf("got job id %q, wanted 4242", id)
	}
	if !strings.Contains(stdout.String(), "has been submitted") {
		t.Errorf("scheduler output not passed through: %q", stdout.String())
	}
	recorded, err := os.ReadFile(filepath.Join(dir, "qsub.args"))
	if err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(string(recorded))
	want := strings.Join(job.QsubArgs(), " ")
	if got != want {
		t.Errorf("got\n%v, wanted\n%v", got, want)
	}
}

func TestQsubBackendFailure(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	b := &QsubBackend{Binary: fakeQsub(t, dir, 3), Stderr: &stderr, Logger: testLogger(nil)}

	_, err := b.Submit(testJob())
	if KindOf(err) != SubmissionError {
		t.Fatalf("got %v, wanted a SubmissionError", err)
	}
	if !strings.Contains(err.Error(), "status 3") {
		t.Errorf("exit status missing from %q", err)
	}
	if !strings.Contains(stderr.String(), "Unable to run job") {
		t.Errorf("scheduler stderr not passed through: %q", stderr.String())
	}
}

func TestQsubBackendMissingBinary(t *testing.T) {
	b := &QsubBackend{Binary: filepath.Join(t.TempDir(), "qsub"), Logger: testLogger(nil)}
	_, err := b.Submit(testJob())
	if KindOf(err) != SubmissionError {
		t.Fatalf("got %v, wanted a SubmissionError", err)
	}
}

func TestParseJobID(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{`Your job-array 4242.1-10:1 ("sweep") has been submitted`, "4242"},
		{`Your job 17 ("sweep") has been submitted`, "17"},
		{"", ""},
		{"something else", ""},
	}
	for _, tt := range tests {
		if got := parseJobID(tt.out); got != tt.want {
			t.Errorf("parseJobID(%q) = %q, wanted %q", tt.out, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{inputErrorf("op", errors.New("x"), "ctx"), ExitInput},
		{filesystemErrorf("op", errors.New("x"), "ctx"), ExitFilesystem},
		{errors.Wrap(submissionErrorf("op", errors.New("x"), "ctx"), "outer"), ExitSubmission},
		{errors.New("plain"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, wanted %d", tt.err, got, tt.want)
		}
	}
}

func TestNewBackend(t *testing.T) {
	settings := defaultSettings()
	b, err := NewBackend(settings, testLogger(nil))
	if err != nil || b.Name() != BackendQsub {
		t.Fatalf("got %v, %v, wanted the qsub backend", b, err)
	}
	settings.Backend = "slurm"
	if _, err := NewBackend(settings, testLogger(nil)); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
