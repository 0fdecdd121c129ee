package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"
)

// RunDeleteModule runs the delete module
func RunDeleteModule(settings *Settings, args []string) int {
	deleteParser := argparse.NewParser("sgearray delete", "Delete submission records from the history DB")
	opt_name := deleteParser.String("n", "name", &argparse.Options{Required: true, Help: "Job name (required)"})
	opt_jobid := deleteParser.String("j", "jobid", &argparse.Options{Help: "Only delete the record of this scheduler job id"})

	parseArgs := append([]string{"sgearray"}, args...)
	if err := deleteParser.Parse(parseArgs); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "help") {
			printModuleHelp("delete")
			return ExitOK
		}
		fmt.Print(deleteParser.Usage(err))
		return ExitUsage
	}

	history, err := InitHistoryDB(settings.Db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history DB: %v\n", err)
		return 1
	}
	defer history.Close()

	n, err := history.DeleteSubmissions(GetCurrentUserID(), *opt_name, *opt_jobid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Delete command failed: %v\n", err)
		return 1
	}
	if *opt_jobid != "" {
		fmt.Printf("Deleted %d record(s) for job '%s' with id '%s'\n", n, *opt_name, *opt_jobid)
	} else {
		fmt.Printf("Deleted %d record(s) for job '%s'\n", n, *opt_name)
	}
	return ExitOK
}
