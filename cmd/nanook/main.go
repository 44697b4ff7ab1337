// Command nanook analyses LAST alignments of long reads against a reference.
//
// Usage:
//
//	nanook [command] [options]
//
// Commands:
//
//	analyse     Parse alignments and write per-reference and per-category statistics
//	lengths     Summarise read lengths only
//	index       Write a sizes table for a reference FASTA file
//	summary     Print the summary of a finished run
//	version     Show version information
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/aria-lang/nanook-go/internal/options"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/pkg/nanook"
)

func analyseCommand() *cobra.Command {
	opts := options.Default()
	cmd := &cobra.Command{
		Use:     "analyse",
		Aliases: []string{"analyze"},
		Short:   "Analyse the alignments of a sample",
		Long: `Parse the LAST alignments of every read category of a sample and write
coverage, perfect k-mer, error and motif tables, the length and alignment
summaries and report.json to <base>/<sample>/analysis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := nanook.Analyse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	options.Register(cmd.Flags(), &opts)
	cmd.MarkFlagRequired("sample")
	cmd.MarkFlagRequired("reference")
	return cmd
}

func lengthsCommand() *cobra.Command {
	opts := options.Default()
	cmd := &cobra.Command{
		Use:   "lengths",
		Short: "Summarise read lengths of a sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := nanook.Lengths(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printLengths(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	options.Register(cmd.Flags(), &opts)
	cmd.MarkFlagRequired("sample")
	return cmd
}

func indexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index <reference.fasta>",
		Short: "Write a sizes table for a reference FASTA file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := reference.IndexFasta(args[0])
			if err != nil {
				return err
			}
			refs, err := reference.LoadSizesFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s references)\n", path, humanize.Comma(int64(refs.Len())))
			return nil
		},
	}
}

func summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <report.json>",
		Short: "Print the summary of a finished run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := nanook.LoadReport(args[0])
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), nanook.Info())
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func printReport(w io.Writer, r *nanook.Report) {
	fmt.Fprintf(w, "Sample %s\n\n", r.Sample)
	for _, c := range r.Categories {
		fmt.Fprintf(w, "%-10s reads: %s, with alignments: %s (%.2f%%)",
			c.Category, humanize.Comma(int64(c.Reads)),
			humanize.Comma(int64(c.ReadsWithAlignment)), c.PercentWithAlignment)
		if len(c.SkippedFiles) > 0 {
			fmt.Fprintf(w, ", skipped files: %d", len(c.SkippedFiles))
		}
		fmt.Fprintln(w)
		for _, ref := range c.References {
			if ref.ReadsWithAlignment == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-20s %s reads, %.2f%% identical, longest perfect k-mer %d\n",
				ref.Name, humanize.Comma(int64(ref.ReadsWithAlignment)),
				ref.AlignedPercentIdentical, ref.LongestPerfectKmer)
		}
	}
	if len(r.Lengths) > 0 {
		fmt.Fprintln(w)
		printLengths(w, r.Lengths)
	}
}

func printLengths(w io.Writer, rows []nanook.LengthSummary) {
	for _, l := range rows {
		fmt.Fprintf(w, "%-10s %s reads, %s bases, mean %.2f, N50 %s, N90 %s\n",
			l.Category, humanize.Comma(int64(l.Reads)), humanize.Comma(int64(l.TotalBases)),
			l.Mean, humanize.Comma(int64(l.N50)), humanize.Comma(int64(l.N90)))
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nanook",
		Short: "Long-read alignment quality analysis",
		Long: `nanook: alignment quality analysis for long sequencing reads

Reads are expected in a sample directory laid out as

  <base>/<sample>/last/<Template|Complement|2D>/*.maf[.gz]
  <base>/<sample>/fasta/<Template|Complement|2D>/*.fasta

with one alignment file per read. Results are written to
<base>/<sample>/analysis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(analyseCommand())
	rootCmd.AddCommand(lengthsCommand())
	rootCmd.AddCommand(indexCommand())
	rootCmd.AddCommand(summaryCommand())
	rootCmd.AddCommand(versionCommand())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error.Printf("%v", err)
		stop()
		os.Exit(1)
	}
}
