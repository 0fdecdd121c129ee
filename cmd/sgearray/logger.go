package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/inconshreveable/log15"
)

// ParseLevel accepts log15 level names and their Python-style spellings
// (warning, critical) in any case.
func ParseLevel(s string) (log15.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return log15.LvlInfo, nil
	case "warning":
		return log15.LvlWarn, nil
	case "critical":
		return log15.LvlCrit, nil
	}
	lvl, err := log15.LvlFromString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log15.LvlInfo, fmt.Errorf("unknown logging level %q", s)
	}
	return lvl, nil
}

// NewLogger builds the process logger. It is created once in main and handed
// to everything that logs.
func NewLogger(w io.Writer, lvl log15.Lvl) log15.Logger {
	logger := log15.New("app", "sgearray")
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat())))
	return logger
}
