package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/akamensky/argparse"
)

var configValueOptions = []string{"-c", "--config", "--max-procs"}

// runConfigMode submits an array job described by a YAML/TOML config file
func runConfigMode(settings *Settings, args []string) int {
	opts, command := splitCommand(args, configValueOptions...)
	for _, arg := range opts {
		if arg == "--help" || arg == "-h" {
			printModuleHelp("config")
			return ExitOK
		}
	}

	parser := argparse.NewParser("sgearray config", "Submit an SGE array job configured by a config file")
	opt_config := parser.String("c", "config", &argparse.Options{Required: true, Help: "Job config file (.yaml, .yml or .toml)"})
	opt_procs := parser.Int("", "max-procs", &argparse.Options{Default: DefaultResources().MaxProcs, Help: fmt.Sprintf("Processes per task (default: %d)", DefaultResources().MaxProcs)})
	opt_dry := parser.Flag("", "dry-run", &argparse.Options{Help: "Log the qsub command without running it"})

	parseArgs := append([]string{"sgearray"}, opts...)
	if err := parser.Parse(parseArgs); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "help") {
			printModuleHelp("config")
			return ExitOK
		}
		fmt.Print(parser.Usage(err))
		return ExitUsage
	}
	if len(command) == 0 {
		fmt.Print(parser.Usage("missing command to run"))
		return ExitUsage
	}

	cfg, err := LoadJobConfig(*opt_config)
	if err != nil {
		if logger, lerr := moduleLogger(settings.Logging.Level, "config"); lerr == nil {
			logger.Error("could not load job config", "kind", KindOf(err), "err", err)
		}
		return ExitCode(err)
	}

	level := settings.Logging.Level
	if cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	logger, err := moduleLogger(level, "config")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}
	logger.Debug("loaded job config", "path", cfg.Path)

	res := cfg.ResourcesOver(DefaultResources())
	res.MaxProcs = *opt_procs

	job := &JobSpec{
		Name:      cfg.Job.Name,
		WorkDir:   WorkDir(cfg.Output.Root, time.Now(), DateUnderscore),
		Params:    cfg.Output.Params,
		Procs:     *opt_procs,
		PE:        settings.PE,
		Shell:     cfg.Job.Shell,
		Command:   command,
		Trailing:  []string{cfg.Path},
		Resources: res,
	}
	return submitJob(settings, logger, job, *opt_dry)
}
