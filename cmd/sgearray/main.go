package main

import (
	"fmt"
	"log"
	"os"
)

// printModuleList prints list of available modules
func printModuleList() {
	fmt.Println("sgearray - submit parameter-sweep array jobs to SGE")
	fmt.Println()
	fmt.Println("Available modules:")
	fmt.Println("    flags             Submit with settings from flags (default module)")
	fmt.Println("    config            Submit with settings from a YAML/TOML config file")
	fmt.Println("    stat              List recorded submissions")
	fmt.Println("    delete            Delete submission records")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("    sgearray                    Show this help")
	fmt.Println("    sgearray <module>           Run a module")
	fmt.Println("    sgearray <module> --help    Show module-specific help")
	fmt.Println("    sgearray --name ... -- cmd  Run flags module (default)")
}

// printModuleHelp prints help for a specific module
func printModuleHelp(module string) {
	switch module {
	case "flags":
		fmt.Println("sgearray flags - Submit an SGE array job configured by flags")
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("    sgearray flags -n <name> -d <dir-prefix> -p <params.csv> [OPTIONS] [--] <command...>")
		fmt.Println()
		fmt.Println("OPTIONS:")
		fmt.Println("    -h, --help        Print help information")
		fmt.Println("    -n, --name        Job name (required)")
		fmt.Println("    -d, --dir-prefix  Working directory prefix, a YYYY-MM-DD directory is created below it (required)")
		fmt.Println("    -p, --params      CSV parameter file with header, one task per data row (required)")
		fmt.Println("    --max-procs       Processes per task, passed as -pe <pe> N (default: 1)")
		fmt.Println("    --shell           Shell passed to qsub -S (default: from settings)")
		fmt.Println("    --dry-run         Log the qsub command without running it")
	case "config":
		fmt.Println("sgearray config - Submit an SGE array job configured by a config file")
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("    sgearray config -c <config.yaml> [OPTIONS] [--] <command...>")
		fmt.Println()
		fmt.Println("OPTIONS:")
		fmt.Println("    -h, --help        Print help information")
		fmt.Println("    -c, --config      Job config file, .yaml/.yml or .toml (required)")
		fmt.Println("    --max-procs       Processes per task, passed as -pe <pe> N (default: 1)")
		fmt.Println("    --dry-run         Log the qsub command without running it")
		fmt.Println()
		fmt.Println("CONFIG KEYS:")
		fmt.Println("    logging.level     debug, info, warn, error or crit (default: info)")
		fmt.Println("    output.root       Working directory root, a YYYY_MM_DD directory is created below it (required)")
		fmt.Println("    output.params     CSV parameter file (required)")
		fmt.Println("    job.name          Job name (required)")
		fmt.Println("    job.shell         Shell passed to qsub -S (default: /bin/bash)")
		fmt.Println("    resources.h_rt, resources.mem, resources.tmpfs   Override the default limits")
	case "stat":
		fmt.Println("sgearray stat - List recorded submissions")
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("    sgearray stat [-n|--name <name>] [-c|--command]")
	case "delete":
		fmt.Println("sgearray delete - Delete submission records")
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("    sgearray delete -n|--name <name> [-j|--jobid <id>]")
	default:
		fmt.Printf("Unknown module: %s\n", module)
		fmt.Println()
		printModuleList()
	}
}

// isModuleName checks if the argument is a module name
func isModuleName(arg string) bool {
	switch arg {
	case "flags", "config", "stat", "delete":
		return true
	}
	return false
}

// run dispatches args (without the program name) and returns the exit code
func run(settings *Settings, args []string) int {
	if len(args) == 0 {
		printModuleList()
		return ExitOK
	}

	firstArg := args[0]
	if firstArg == "--help" || firstArg == "-h" {
		printModuleList()
		return ExitOK
	}

	if isModuleName(firstArg) {
		if len(args) > 1 && (args[1] == "--help" || args[1] == "-h") {
			printModuleHelp(firstArg)
			return ExitOK
		}
		switch firstArg {
		case "flags":
			return runFlagsMode(settings, args[1:])
		case "config":
			return runConfigMode(settings, args[1:])
		case "stat":
			return RunStatModule(settings, args[1:])
		case "delete":
			return RunDeleteModule(settings, args[1:])
		}
	}

	// If first argument is an option (like --name), default to flags module
	if isOption(firstArg) {
		return runFlagsMode(settings, args)
	}

	fmt.Printf("Unknown module or option: %s\n", firstArg)
	fmt.Println()
	printModuleList()
	return ExitUsage
}

func main() {
	settings, err := LoadSettings(SettingsPaths()...)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	os.Exit(run(settings, os.Args[1:]))
}
