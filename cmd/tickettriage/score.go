package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/render"
	"github.com/jalvord/tickettriage/internal/score"
)

type scoreFlags struct {
	impactSeverity int
	customerARR    int
	slaBreach      int
	frequency      int
	workaround     int
	rcaActionItem  int
	blocking       float64
	risk           float64
	format         string
	out            string
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute an impact score from explicit component values",
		Long: "Compute an impact score from explicit rubric values.\n\nAllowed values:\n" +
			allowedValuesHelp(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.impactSeverity, "impact-severity", 0, "Impact & Severity points")
	flags.IntVar(&f.customerARR, "customer-arr", 0, "Customer ARR points")
	flags.IntVar(&f.slaBreach, "sla-breach", 0, "SLA Breach points")
	flags.IntVar(&f.frequency, "frequency", 0, "Frequency points")
	flags.IntVar(&f.workaround, "workaround", 0, "Workaround points")
	flags.IntVar(&f.rcaActionItem, "rca-action-item", 0, "RCA Action Item points")
	flags.Float64Var(&f.blocking, "blocking", 1.0, "Support blocking multiplier (1.0-1.5)")
	flags.Float64Var(&f.risk, "risk", 1.0, "Account risk multiplier (1.0-2.0)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	for _, name := range []string{
		"impact-severity", "customer-arr", "sla-breach",
		"frequency", "workaround", "rca-action-item",
	} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runScore(f *scoreFlags) error {
	selections := []score.Selection{
		{Component: score.ImpactSeverity, Value: f.impactSeverity},
		{Component: score.CustomerARR, Value: f.customerARR},
		{Component: score.SLABreach, Value: f.slaBreach},
		{Component: score.Frequency, Value: f.frequency},
		{Component: score.Workaround, Value: f.workaround},
		{Component: score.RCAActionItem, Value: f.rcaActionItem},
	}

	b, err := score.Evaluate(selections, score.Multipliers{
		SupportBlocking: f.blocking,
		AccountRisk:     f.risk,
	})
	if err != nil {
		return exitError(3, "invalid input: %v", err)
	}

	output, err := formatBreakdown(b, nil, f.format)
	if err != nil {
		return err
	}
	return writeOutput(f.out, output)
}

func formatBreakdown(b score.Breakdown, estimates []classify.Estimate, format string) (string, error) {
	switch format {
	case "text":
		return render.Text(b, estimates), nil
	case "json":
		return render.JSON(b)
	default:
		return "", exitError(3, "unknown format: %s", format)
	}
}

func allowedValuesHelp() string {
	var b strings.Builder
	for _, c := range score.Components {
		vals := make([]string, 0, 6)
		for _, v := range c.AllowedValues() {
			vals = append(vals, fmt.Sprintf("%d", v))
		}
		fmt.Fprintf(&b, "  %-18s %s\n", c.DisplayName()+":", strings.Join(vals, ", "))
	}
	return b.String()
}
