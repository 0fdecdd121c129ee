package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akamensky/argparse"
)

// printSubmissions writes the submission table
func printSubmissions(w io.Writer, records []SubmissionRecord, showCommand bool) {
	fmt.Fprintf(w, "%-6s %-20s %-10s %-8s %-6s %-8s %-12s %s\n",
		"id", "name", "jobid", "tasks", "procs", "backend", "stime", "workdir")

	for _, r := range records {
		jobID := "-"
		if r.JobID.Valid {
			jobID = r.JobID.String
		}
		fmt.Fprintf(w, "%-6d %-20s %-10s %-8d %-6d %-8s %-12s %s\n",
			r.ID, r.Name, jobID, r.Tasks, r.Procs, r.Backend, formatTimeShort(r.SubmitTime), r.WorkDir)
	}

	if showCommand && len(records) > 0 {
		fmt.Fprintln(w)
		for _, r := range records {
			fmt.Fprintf(w, "%d\t%s\n", r.ID, r.Command)
		}
	}
}

// RunStatModule runs the stat module
func RunStatModule(settings *Settings, args []string) int {
	statParser := argparse.NewParser("sgearray stat", "List recorded submissions")
	opt_name := statParser.String("n", "name", &argparse.Options{Help: "Filter by job name"})
	opt_cmd := statParser.Flag("c", "command", &argparse.Options{Help: "Also print the submitted qsub commands"})

	parseArgs := append([]string{"sgearray"}, args...)
	if err := statParser.Parse(parseArgs); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "help") {
			printModuleHelp("stat")
			return ExitOK
		}
		fmt.Print(statParser.Usage(err))
		return ExitUsage
	}

	history, err := InitHistoryDB(settings.Db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history DB: %v\n", err)
		return 1
	}
	defer history.Close()

	records, err := history.ListSubmissions(GetCurrentUserID(), *opt_name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Stat command failed: %v\n", err)
		return 1
	}
	printSubmissions(os.Stdout, records, *opt_cmd)
	return ExitOK
}
