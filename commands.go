package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wildfunctions/exprequiv/pkg/cases"
	"github.com/wildfunctions/exprequiv/pkg/check"
	"github.com/wildfunctions/exprequiv/pkg/expr"
	"github.com/wildfunctions/exprequiv/pkg/pool"
)

var (
	cfg       = check.DefaultConfig()
	files     []string
	noColor   bool
	showLaTeX bool

	logger *zap.Logger
)

// errFailed is returned when a run finished but found failures, so the
// process exits non-zero without printing a second error.
var errFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:           "exprequiv",
	Short:         "exprequiv - canonical forms and equivalence checks for arithmetic expressions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		var err error
		logger, err = newLogger(cfg.Verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [suites...]",
	Short: "Check equivalence cases from built-in suites and case files",
	Long: "Check runs every case of the named suites (all suites when none are named\n" +
		"and no --file is given) plus the cases of each --file, and reports whether\n" +
		"each pair normalizes as expected.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := collectCases(args, files)
		if err != nil {
			return err
		}
		c, err := check.New(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		report := c.Run(ctx, cs)
		if err := writeReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if report.Failed > 0 || report.Canceled {
			return errFailed
		}
		return nil
	},
}

var fuzzCmd = &cobra.Command{
	Use:   "fuzz",
	Short: "Audit random expressions for normal form properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := check.New(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		report := c.Fuzz(ctx)
		if err := writeFuzzReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if len(report.Failures) > 0 || report.Canceled {
			return errFailed
		}
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [suites...]",
	Short: "Print the normal forms of the expressions in suites and case files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := collectCases(args, files)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, tc := range cs {
			fmt.Fprintln(w, tc.Name)
			for _, n := range []expr.ExprNode{tc.A, tc.B} {
				nf := expr.NormalForm(n)
				fmt.Fprintf(w, "  %s => %s\n", n, nf)
				if showLaTeX {
					fmt.Fprintf(w, "    %s => %s\n", n.LaTeX(), nf.LaTeX())
				}
				fmt.Fprintf(w, "    terms: %s\n", strings.Join(expr.Terms(n), ", "))
			}
		}
		return nil
	},
}

var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "List built-in case suites and random expression pools",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "suites:")
		for _, name := range cases.Names() {
			cs, _ := cases.Get(name)
			fmt.Fprintf(w, "  %-10s %d cases\n", name, len(cs))
		}
		fmt.Fprintln(w, "pools:")
		for _, name := range pool.Names() {
			fmt.Fprintf(w, "  %s\n", name)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose logging")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	checkCmd.Flags().StringSliceVarP(&files, "file", "f", nil, "YAML case file (repeatable)")
	checkCmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	checkCmd.Flags().Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "tolerance for numeric comparisons")
	checkCmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, latex)")

	fuzzCmd.Flags().StringVar(&cfg.Pool, "pool", cfg.Pool, "expression pool ("+strings.Join(pool.Names(), ", ")+")")
	fuzzCmd.Flags().IntVar(&cfg.Samples, "samples", cfg.Samples, "number of random expressions")
	fuzzCmd.Flags().IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max tree depth")
	fuzzCmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fuzzCmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	fuzzCmd.Flags().Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "tolerance for numeric comparisons")
	fuzzCmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, latex)")

	normalizeCmd.Flags().StringSliceVarP(&files, "file", "f", nil, "YAML case file (repeatable)")
	normalizeCmd.Flags().BoolVar(&showLaTeX, "latex", false, "also print LaTeX")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fuzzCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(suitesCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

// collectCases builds the cases of the named suites and files. With neither,
// every built-in suite is used.
func collectCases(suites, paths []string) ([]cases.Case, error) {
	if len(suites) == 0 && len(paths) == 0 {
		suites = cases.Names()
	}
	var out []cases.Case
	for _, name := range suites {
		cs, err := cases.Get(name)
		if err != nil {
			return nil, err
		}
		for i := range cs {
			cs[i].Name = name + "/" + cs[i].Name
		}
		out = append(out, cs...)
	}
	for _, path := range paths {
		cs, err := cases.Load(path)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	return out, nil
}

func writeReport(w io.Writer, r check.Report) error {
	switch cfg.Format {
	case "json":
		return check.WriteJSON(w, r)
	case "latex":
		check.WriteLaTeX(w, r)
	default:
		check.WriteText(w, r)
	}
	return nil
}

func writeFuzzReport(w io.Writer, r check.FuzzReport) error {
	switch cfg.Format {
	case "json":
		return check.WriteJSON(w, r)
	case "latex":
		check.WriteFuzzLaTeX(w, r)
	default:
		check.WriteFuzzText(w, r)
	}
	return nil
}
