package main

import (
	"github.com/spf13/cobra"

	"github.com/jalvord/tickettriage/internal/render"
	"github.com/jalvord/tickettriage/internal/ticket"
)

type parseFlags struct {
	out string
}

func newParseCmd() *cobra.Command {
	f := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <export>",
		Short: "Parse a support export and print the normalized ticket as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	return cmd
}

func runParse(exportPath string, f *parseFlags) error {
	t, err := ticket.Load(exportPath)
	if err != nil {
		return exitError(3, "failed to load export: %v", err)
	}

	output, err := render.JSON(t)
	if err != nil {
		return err
	}
	return writeOutput(f.out, output)
}
