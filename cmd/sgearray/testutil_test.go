package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/inconshreveable/log15"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// writeParams writes a CSV with a header and n data rows
func writeParams(t *testing.T, dir string, n int) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("alpha,beta\n")
	for i := 0; i < n; i++ {
		buf.WriteString("0.1,2\n")
	}
	return writeFile(t, dir, "params.csv", buf.String())
}

// fakeQsub writes an executable that records its arguments next to itself
// and prints a qsub style confirmation, then exits with code
func fakeQsub(t *testing.T, dir string, code int) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo \"$@\" > \"$(dirname \"$0\")/qsub.args\"\n" +
		"echo 'Your job-array 4242.1-3:1 (\"sweep\") has been submitted'\n"
	if code != 0 {
		script = "#!/bin/sh\necho 'Unable to run job: denied' 1>&2\nexit " + strconv.Itoa(code) + "\n"
	}
	path := filepath.Join(dir, "qsub")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake qsub: %v", err)
	}
	return path
}

func testLogger(buf *bytes.Buffer) log15.Logger {
	if buf == nil {
		logger := log15.New()
		logger.SetHandler(log15.DiscardHandler())
		return logger
	}
	return NewLogger(buf, log15.LvlDebug)
}

type fakeBackend struct {
	calls int
	args  []string
	id    string
	err   error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Submit(job *JobSpec) (string, error) {
	f.calls++
	f.args = job.QsubArgs()
	return f.id, f.err
}

type fakeRecorder struct {
	subs []*Submission
	err  error
}

func (f *fakeRecorder) Record(job *JobSpec, sub *Submission) error {
	f.subs = append(f.subs, sub)
	return f.err
}
