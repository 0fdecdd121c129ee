//go:build !drmaa

package main

import (
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var errNoDRMAA = errors.New("sgearray was built without DRMAA support (rebuild with -tags drmaa)")

func newDRMAABackend(logger log15.Logger) (Backend, error) {
	return nil, submissionErrorf("drmaa", errNoDRMAA, "select backend")
}
