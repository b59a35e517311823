package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/jira"
	"github.com/jalvord/tickettriage/internal/render"
	"github.com/jalvord/tickettriage/internal/ticket"
)

type rcaFlags struct {
	customer       string
	date           string
	bugExport      string
	zendeskTickets []string
	relatedBugs    []string
	format         string
	out            string
}

func newRCACmd() *cobra.Command {
	f := &rcaFlags{}

	cmd := &cobra.Command{
		Use:   "rca",
		Short: "Draft a root-cause-analysis ticket from the standard template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRCA(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.customer, "customer", "", "Customer name (required)")
	flags.StringVar(&f.date, "date", "", "Incident date as MM/DD/YY (default: today)")
	flags.StringVar(&f.bugExport, "bug-export", "", "Bug export to seed root cause and action items from")
	flags.StringSliceVar(&f.zendeskTickets, "zendesk-tickets", nil, "Related Zendesk ticket IDs")
	flags.StringSliceVar(&f.relatedBugs, "related-bugs", nil, "Related Jira bug keys to link")
	flags.StringVar(&f.format, "format", "md", "Output format: md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func runRCA(f *rcaFlags) error {
	date := f.date
	if date == "" {
		date = time.Now().Format("01/02/06")
	}

	opts := jira.RCAOpts{
		Customer:       f.customer,
		Date:           date,
		ZendeskTickets: f.zendeskTickets,
		RelatedBugs:    f.relatedBugs,
	}

	if f.bugExport != "" {
		bug, err := ticket.Load(f.bugExport)
		if err != nil {
			return exitError(3, "failed to load bug export: %v", err)
		}
		opts.Bug = bug
	}

	td := jira.MapRCA(opts)

	var output string
	var err error
	switch f.format {
	case "md":
		output = render.Markdown(td)
	case "json":
		output, err = render.JSON(td)
		if err != nil {
			return err
		}
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	return writeOutput(f.out, output)
}
