package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/akamensky/argparse"
)

var flagsValueOptions = []string{"-n", "--name", "-d", "--dir-prefix", "-p", "--params", "--max-procs", "--shell"}

// runFlagsMode submits an array job with every setting taken from flags
func runFlagsMode(settings *Settings, args []string) int {
	opts, command := splitCommand(args, flagsValueOptions...)
	for _, arg := range opts {
		if arg == "--help" || arg == "-h" {
			printModuleHelp("flags")
			return ExitOK
		}
	}

	parser := argparse.NewParser("sgearray flags", "Submit an SGE array job configured by flags")
	opt_name := parser.String("n", "name", &argparse.Options{Required: true, Help: "Job name"})
	opt_prefix := parser.String("d", "dir-prefix", &argparse.Options{Required: true, Help: "Working directory prefix; a YYYY-MM-DD directory is created below it"})
	opt_params := parser.String("p", "params", &argparse.Options{Required: true, Help: "CSV parameter file, one array task per data row"})
	opt_procs := parser.Int("", "max-procs", &argparse.Options{Default: DefaultResources().MaxProcs, Help: fmt.Sprintf("Processes per task (default: %d)", DefaultResources().MaxProcs)})
	opt_shell := parser.String("", "shell", &argparse.Options{Default: settings.Shell, Help: "Shell passed to qsub -S (default: none)"})
	opt_dry := parser.Flag("", "dry-run", &argparse.Options{Help: "Log the qsub command without running it"})

	parseArgs := append([]string{"sgearray"}, opts...)
	if err := parser.Parse(parseArgs); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "help") {
			printModuleHelp("flags")
			return ExitOK
		}
		fmt.Print(parser.Usage(err))
		return ExitUsage
	}
	if len(command) == 0 {
		fmt.Print(parser.Usage("missing command to run"))
		return ExitUsage
	}

	logger, err := moduleLogger(settings.Logging.Level, "flags")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}

	res := DefaultResources()
	res.MaxProcs = *opt_procs

	job := &JobSpec{
		Name:      *opt_name,
		WorkDir:   WorkDir(*opt_prefix, time.Now(), DateDash),
		Params:    *opt_params,
		Procs:     *opt_procs,
		PE:        settings.PE,
		Shell:     *opt_shell,
		Command:   command,
		Resources: res,
	}
	return submitJob(settings, logger, job, *opt_dry)
}
