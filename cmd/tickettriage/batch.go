package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/batch"
	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/render"
)

type batchFlags struct {
	profileName string
	workers     int
	jsonOut     string
	xlsxOut     string
	format      string
	verbose     bool
}

func newBatchCmd() *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <export.xlsx>",
		Short: "Score every row of a multi-ticket Excel export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.profileName, "profile", "default", "Classification profile name")
	flags.IntVar(&f.workers, "workers", batch.DefaultWorkers, "Concurrent row evaluations")
	flags.StringVar(&f.jsonOut, "json-out", "", "Write the full report as JSON to this path")
	flags.StringVar(&f.xlsxOut, "xlsx-out", "", "Write a copy of the export with score columns appended")
	flags.StringVar(&f.format, "format", "text", "Stdout format: text or json")
	flags.BoolVar(&f.verbose, "verbose", false, "Log per-row progress")

	return cmd
}

func runBatch(exportPath string, f *batchFlags) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if f.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	profile, err := classify.LoadBuiltin(f.profileName)
	if err != nil {
		return exitError(3, "failed to load profile: %v", err)
	}

	report, err := batch.Run(context.Background(), exportPath, profile, f.workers)
	if err != nil {
		return exitError(3, "batch scoring failed: %v", err)
	}

	if f.jsonOut != "" {
		if err := batch.WriteJSON(report, f.jsonOut); err != nil {
			return err
		}
	}
	if f.xlsxOut != "" {
		if err := batch.WriteXLSX(report, exportPath, f.xlsxOut); err != nil {
			return err
		}
	}

	switch f.format {
	case "text":
		printBatchSummary(report)
	case "json":
		output, err := render.JSON(report)
		if err != nil {
			return err
		}
		fmt.Print(output)
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	return nil
}

func printBatchSummary(report *batch.Report) {
	fmt.Printf("Scored %d of %d rows (%d failed)\n", report.Scored, report.Rows, report.Failed)
	for _, r := range report.Results {
		if r.Err != "" {
			fmt.Printf("  row %d  %-12s ERROR %s\n", r.Row, r.TicketID, r.Err)
			continue
		}
		fmt.Printf("  row %d  %-12s %3d %s\n", r.Row, r.TicketID, r.Breakdown.Total, r.Priority)
	}
}
