package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "tickettriage",
		Short:         "Score support tickets with the impact rubric and draft Jira tickets",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newScoreCmd())
	root.AddCommand(newEstimateCmd())
	root.AddCommand(newTicketCmd())
	root.AddCommand(newRCACmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newParseCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Exit codes: 2 score below threshold, 3 input error, 4 provider error,
// 5 response parse error.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func writeOutput(out, content string) error {
	if out != "" {
		if err := os.WriteFile(out, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Print(content)
	return nil
}
