package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "docoutline",
		Short: "Infer title and heading outline from documents",
		Long: `docoutline recovers a document's title and H1-H6 outline from page
layout and typography: font sizes, weight, position and section numbering.

Supported formats: PDF, layout JSON, DOCX, HTML, Markdown`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(layoutCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProcessor(cfg config.Config) *pipeline.Processor {
	return pipeline.NewProcessor(parser.Options{LinesPerPage: cfg.LinesPerPage}, nil, nil)
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the outline of one document as JSON",
		Long: `Parse a single document and print {"title", "outline"} to stdout.

Example:
  docoutline extract report.pdf
  docoutline extract handbook.docx --tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asTree, _ := cmd.Flags().GetBool("tree")

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			res, err := newProcessor(config.Load()).Outline(filepath.Base(path), data, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			if asTree {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(doctree.Build(res))
			}
			return res.WriteJSON(out)
		},
	}
	cmd.Flags().Bool("tree", false, "Print headings nested by level")
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Outline every document in a directory",
		Long: `Scan a directory for supported documents and write one <name>.json per
input to the output directory. A document that fails is logged and counted;
the rest of the batch continues.

Example:
  docoutline batch --input ./pdfs --output ./outlines --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			workers, _ := cmd.Flags().GetInt("workers")

			if input == "" || output == "" {
				return fmt.Errorf("--input and --output flags are required")
			}

			cfg := config.Load()
			if workers <= 0 {
				workers = cfg.WorkerCount
			}
			log, closer := newLogger(cfg)
			defer closer.Close()

			runner := pipeline.NewBatchRunner(newProcessor(cfg), log, workers)
			report, err := runner.Run(cmd.Context(), input, output)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "processed %d, failed %d, skipped %d\n",
				report.Processed, report.Failed, report.Skipped)
			for _, f := range report.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.File, f.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Directory of input documents")
	cmd.Flags().StringP("output", "o", "", "Directory for JSON outlines")
	cmd.Flags().IntP("workers", "w", 0, "Documents processed concurrently (default WORKER_COUNT)")
	return cmd
}

func layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <file>",
		Short: "Dump the parsed page layout as JSON",
		Long: `Print the pages, blocks, lines and spans a parser produced for a document.
The output can be fed back to extract as a .json file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := newProcessor(config.Load()).Layout(filepath.Base(path), data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return layout.Encode(cmd.OutOrStdout(), doc)
		},
	}
}
