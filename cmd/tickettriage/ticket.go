package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/jira"
	"github.com/jalvord/tickettriage/internal/llm"
	"github.com/jalvord/tickettriage/internal/prompt"
	"github.com/jalvord/tickettriage/internal/redact"
	"github.com/jalvord/tickettriage/internal/render"
	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

const maxLabels = 5

type ticketFlags struct {
	format        string
	out           string
	project       string
	profileName   string
	product       string
	model         string
	maxTokens     int
	temperature   float64
	blocking      float64
	risk          float64
	failBelow     int
	redactEnabled bool
	offline       bool
	promptOut     string
	fromResponse  string
	verbose       bool

	// provider overrides API-key resolution; set by tests.
	provider llm.Provider
}

func newTicketCmd() *cobra.Command {
	f := &ticketFlags{}

	cmd := &cobra.Command{
		Use:   "ticket <export>",
		Short: "Build a paste-ready Jira bug ticket from a support export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTicket(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "md", "Output format: md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.project, "project", jira.DefaultProject, "Jira project key")
	flags.StringVar(&f.profileName, "profile", "default", "Classification profile name")
	flags.StringVar(&f.product, "product", "", "Product name for the analysis prompt")
	flags.StringVar(&f.model, "model", "", "Model ID (e.g., claude-sonnet-4-20250514, gpt-4o)")
	flags.IntVar(&f.maxTokens, "max-tokens", 8192, "Max response tokens")
	flags.Float64Var(&f.temperature, "temperature", 0.2, "Model temperature")
	flags.Float64Var(&f.blocking, "blocking", 1.0, "Support blocking multiplier (1.0-1.5)")
	flags.Float64Var(&f.risk, "risk", 1.0, "Account risk multiplier (1.0-2.0)")
	flags.IntVar(&f.failBelow, "fail-below", 0, "Exit non-zero if the total score is below this value")
	flags.BoolVar(&f.redactEnabled, "redact", true, "Redact secrets before sending to model")
	flags.BoolVar(&f.offline, "offline", false, "Skip the LLM analysis step entirely")
	flags.StringVar(&f.promptOut, "prompt-out", "", "Write the analysis prompt and a response template, then stop")
	flags.StringVar(&f.fromResponse, "from-response", "", "Read a pasted model response instead of calling an API")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runTicket(exportPath string, f *ticketFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	verbose("Loading export: %s", exportPath)
	t, err := ticket.Load(exportPath)
	if err != nil {
		return exitError(3, "failed to load export: %v", err)
	}
	verbose("Parsed %s ticket %s", t.Source, t.ID)

	if f.redactEnabled {
		verbose("Redacting secrets")
		t.Summary = redact.Redact(t.Summary)
		t.Description = redact.Redact(t.Description)
		t.Raw = redact.Redact(t.Raw)
	}

	verbose("Loading profile: %s", f.profileName)
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
	verbose("Impact score: %d (%s)", b.Total, score.PriorityFor(b.Total))

	analysis, err := analyzeTicket(t, f, verbose)
	if err != nil {
		return err
	}
	if analysis == nil && f.promptOut != "" {
		// Prompt written for an offline session; nothing more to do.
		return nil
	}
	if analysis != nil {
		t.Summary = analysis.Summary
		t.Description = analysis.Description
	}

	labels := classify.ExtractLabels(profile, t.Summary, t.Description, t.Customer, string(t.Source), maxLabels)
	td := jira.MapBug(t, estimates, b, labels, f.project)

	if errs := jira.Validate(td); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Ticket validation errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return exitError(5, "generated ticket failed validation")
	}

	var output string
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

	if err := writeOutput(f.out, output); err != nil {
		return err
	}

	if f.failBelow > 0 && b.Total < f.failBelow {
		return exitError(2, "impact score %d is below threshold %d", b.Total, f.failBelow)
	}
	return nil
}

// analyzeTicket runs the LLM analysis step. It returns nil with no error
// when analysis is skipped (--offline) or deferred (--prompt-out).
func analyzeTicket(t *ticket.Ticket, f *ticketFlags, verbose func(string, ...any)) (*prompt.Analysis, error) {
	if f.fromResponse != "" {
		verbose("Reading model response from %s", f.fromResponse)
		data, err := os.ReadFile(f.fromResponse)
		if err != nil {
			return nil, exitError(3, "failed to read response file: %v", err)
		}
		a, err := prompt.ParseResponse(string(data))
		if err != nil {
			return nil, exitError(5, "failed to parse response: %v", err)
		}
		return &a, nil
	}

	if f.offline {
		verbose("Offline mode; skipping analysis")
		return nil, nil
	}

	promptText := prompt.Build(prompt.BuildOpts{Ticket: t, Product: f.product})

	if f.promptOut != "" {
		verbose("Writing analysis prompt to %s", f.promptOut)
		if err := os.WriteFile(f.promptOut, []byte(promptText), 0600); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}
		templatePath := f.promptOut + ".response"
		if err := os.WriteFile(templatePath, []byte(prompt.ResponseTemplate(t.ID)), 0600); err != nil {
			return nil, fmt.Errorf("failed to write response template: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Prompt written. Paste the model response into %s and rerun with --from-response %s\n",
			templatePath, templatePath)
		return nil, nil
	}

	provider := f.provider
	if provider == nil {
		verbose("Resolving LLM provider")
		p, err := llm.ResolveProvider(f.model)
		if err != nil {
			return nil, exitError(4, "model provider error: %v", err)
		}
		provider = p
	}
	verbose("Using provider: %s", provider.Name())

	settings := llm.Settings{
		Model:       f.model,
		Temperature: f.temperature,
		MaxTokens:   f.maxTokens,
	}
	verbose("Calling LLM...")
	result, err := provider.Generate(context.Background(), promptText, settings)
	if err != nil {
		return nil, exitError(4, "LLM call failed: %v", err)
	}
	verbose("Received LLM response (%d bytes)", len(result))

	a, err := prompt.ParseResponse(result)
	if err != nil {
		return nil, exitError(5, "failed to parse LLM response: %v", err)
	}
	return &a, nil
}
