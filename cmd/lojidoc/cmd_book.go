package main

import (
	"github.com/spf13/cobra"
)

func newBookCmd() *cobra.Command {
	var flags generateFlags
	var build bool

	cmd := &cobra.Command{
		Use:   "book [dir]",
		Short: "Generate markdown and collect it into an mdBook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			cfg, err := flags.load(cmd.Flags(), input)
			if err != nil {
				return err
			}
			if cfg.Book == "" {
				cfg.Book = "Documentation"
			}
			opts, err := flags.options(cfg, input)
			if err != nil {
				return err
			}
			opts.BuildBook = build
			return generate(cmd.Context(), opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&flags.book, "book", "b", "", "book title (default \"Documentation\")")
	cmd.Flags().BoolVar(&build, "build", true, "run mdbook build when mdbook is installed")

	return cmd
}
