package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lojidoc/generator"
	"github.com/dhamidi/lojidoc/java/parser"
)

func newLintCmd() *cobra.Command {
	var flags generateFlags
	var failOnFindings bool

	cmd := &cobra.Command{
		Use:   "lint [dir]",
		Short: "Report missing or incomplete documentation without writing files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			cfg, err := flags.load(cmd.Flags(), input)
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg, input)
			if err != nil {
				return err
			}
			result, err := generator.Lint(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("lint: %w", err)
			}
			for _, fe := range result.Errors {
				fmt.Fprintf(os.Stderr, "error: %s\n", fe)
			}
			if err := result.Report.WriteText(os.Stdout); err != nil {
				return err
			}
			if n := result.Report.Count(parser.DiagnosticLint); failOnFindings && n > 0 {
				return fmt.Errorf("lint: %d findings", n)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&failOnFindings, "fail", false, "exit with an error when there are findings")

	return cmd
}
