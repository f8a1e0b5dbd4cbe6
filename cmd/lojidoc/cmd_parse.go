package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lojidoc/format"
	"github.com/dhamidi/lojidoc/java/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var showTokens bool
	var showElements bool
	var lint bool
	var signatures bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if ext := filepath.Ext(filename); ext != ".java" {
				return fmt.Errorf("unsupported file extension: %s (expected .java)", ext)
			}

			if showTokens {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read java file: %w", err)
				}
				enc := json.NewEncoder(os.Stdout)
				for _, tok := range parser.NewLexer(data).Tokens() {
					if err := enc.Encode(tok); err != nil {
						return fmt.Errorf("encode token: %w", err)
					}
				}
				return nil
			}

			opts := []parser.Option{}
			if lint {
				opts = append(opts, parser.WithLint())
			}
			if showElements {
				opts = append(opts, parser.WithStatements(printStatement(json.NewEncoder(os.Stdout))))
			}
			decl, diags, err := parser.ParseFile(filename, opts...)
			if err != nil {
				return fmt.Errorf("parse java file: %w", err)
			}
			if err := writeDiagnostics(os.Stderr, outputFormat, diags); err != nil {
				return err
			}
			if showElements {
				return nil
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "markdown", "md":
				encoder = format.NewMarkdownEncoder(os.Stdout, format.MarkdownOptions{IncludeSignatures: signatures})
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(decl); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, markdown)")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "print the lexer tokens as JSON lines instead")
	cmd.Flags().BoolVar(&showElements, "elements", false, "print the classified elements of each statement as JSON lines instead")
	cmd.Flags().BoolVarP(&lint, "lint", "l", false, "report documentation lint findings on stderr")
	cmd.Flags().BoolVarP(&signatures, "signatures", "s", false, "include declaration signatures in markdown output")

	return cmd
}

type statementLine struct {
	Line     int              `json:"line"`
	Elements []parser.Element `json:"elements"`
}

func printStatement(enc *json.Encoder) func(int, []parser.Element) {
	return func(line int, elements []parser.Element) {
		if err := enc.Encode(statementLine{Line: line, Elements: elements}); err != nil {
			log.Errorf("encode statement: %s", err)
		}
	}
}

// writeDiagnostics prints one diagnostic per line, as JSON when the output
// format is json.
func writeDiagnostics(w io.Writer, outputFormat string, diags []parser.Diagnostic) error {
	if outputFormat != "json" {
		for _, d := range diags {
			fmt.Fprintln(w, d)
		}
		return nil
	}
	enc := json.NewEncoder(w)
	for _, d := range diags {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode diagnostic: %w", err)
		}
	}
	return nil
}
