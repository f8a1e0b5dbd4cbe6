package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.3.0"

var log = commonlog.GetLogger("lojidoc")

func main() {
	var verbosity int
	var logFile string

	rootCmd := &cobra.Command{
		Use:     "lojidoc",
		Short:   "Generate markdown documentation from Java sources",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFile != "" {
				commonlog.Configure(verbosity, &logFile)
			} else {
				commonlog.Configure(verbosity, nil)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newBookCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
