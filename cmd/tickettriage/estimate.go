package main

import (
	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/render"
	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

type estimateFlags struct {
	profileName string
	blocking    float64
	risk        float64
	format      string
	out         string
}

func newEstimateCmd() *cobra.Command {
	f := &estimateFlags{}

	cmd := &cobra.Command{
		Use:   "estimate <export>",
		Short: "Suggest rubric values for a ticket export and score them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.profileName, "profile", "default", "Classification profile name")
	flags.Float64Var(&f.blocking, "blocking", 1.0, "Support blocking multiplier (1.0-1.5)")
	flags.Float64Var(&f.risk, "risk", 1.0, "Account risk multiplier (1.0-2.0)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	return cmd
}

// estimateResult is the JSON shape of an estimate run.
type estimateResult struct {
	Ticket    string              `json:"ticket,omitempty"`
	Estimates []classify.Estimate `json:"estimates"`
	Breakdown score.Breakdown     `json:"breakdown"`
}

func runEstimate(exportPath string, f *estimateFlags) error {
	t, err := ticket.Load(exportPath)
	if err != nil {
		return exitError(3, "failed to load export: %v", err)
	}

	profile, err := classify.LoadBuiltin(f.profileName)
	if err != nil {
		return exitError(3, "failed to load profile: %v", err)
	}

	estimates, err := classify.Classify(t, profile)
	if err != nil {
		return exitError(3, "classification failed: %v", err)
	}

	b, err := score.Evaluate(classify.Selections(estimates), score.Multipliers{
		SupportBlocking: f.blocking,
		AccountRisk:     f.risk,
	})
	if err != nil {
		return exitError(3, "invalid input: %v", err)
	}

	var output string
	switch f.format {
	case "text":
		output = render.Text(b, estimates)
	case "json":
		output, err = render.JSON(estimateResult{Ticket: t.ID, Estimates: estimates, Breakdown: b})
		if err != nil {
			return err
		}
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	return writeOutput(f.out, output)
}
