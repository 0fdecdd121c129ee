package main

import (
	"os/user"
	"strings"
	"time"
)

// GetCurrentUserID returns current user ID
func GetCurrentUserID() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	return u.Username
}

// formatTimeShort drops the year and seconds: "01-02 15:04"
func formatTimeShort(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01-02 15:04")
}

// isOption checks if the argument looks like an option (starts with -)
func isOption(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

// splitCommand separates module options from the trailing command tokens.
// Everything after "--" is the command. Without "--", the command starts at
// the first token that is neither an option nor the value of one of
// valueFlags.
func splitCommand(args []string, valueFlags ...string) (opts, command []string) {
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[:i], args[i+1:]
		}
		if !isOption(arg) {
			return args[:i], args[i:]
		}
		if strings.Contains(arg, "=") {
			continue
		}
		if takesValue[arg] && i+1 < len(args) {
			i++
		}
	}
	return args, nil
}
