package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lojidoc/java/codebase"
	"github.com/dhamidi/lojidoc/java/parser"
)

func newLSPCmd() *cobra.Command {
	var orphanDocs string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that reports documentation lint findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := parser.ParseOrphanPolicy(orphanDocs)
			if err != nil {
				return fmt.Errorf("lsp: %w", err)
			}
			server := codebase.NewLSPServer(version, parser.WithOrphanDocs(policy))
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&orphanDocs, "orphan-docs", "report", "what to do with doc comments not followed by a declaration (discard, report, merge)")

	return cmd
}
