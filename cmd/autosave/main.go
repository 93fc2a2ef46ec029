package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/config"
	applog "github.com/rgehrsitz/autosave/internal/log"
	"github.com/rgehrsitz/autosave/internal/output"
	"github.com/rgehrsitz/autosave/internal/summary"
	"github.com/rgehrsitz/autosave/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Round-up savings and retirement return calculator",
	Long: `Rounds every expense up to the next multiple of 100, applies fixed, extra and group
periods to the spare change, and projects what it grows into on the NPS and Index Fund
tracks until retirement. Also serves the same operations over HTTP and AMQP.`,
	SilenceUsage: true,
}

// newLogger builds the CLI logger on stderr. Debug lowers the level.
func newLogger(cmd *cobra.Command) *applog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return applog.New(applog.Config{Level: level, Component: applog.ComponentApp, Format: "text", Output: cmd.ErrOrStderr()})
}

// newEngine loads assumptions and wires the engine logger when debugging
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	path, _ := cmd.Flags().GetString("assumptions")
	assumptions, err := config.NewInputParser().LoadAssumptions(path)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewEngineWithAssumptions(assumptions)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		engine.SetLogger(applog.Printf{L: newLogger(cmd).WithComponent(applog.ComponentEngine)})
	}
	return engine, nil
}

func writeReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	return output.Write(cmd.OutOrStdout(), format, report)
}

var parseCmd = &cobra.Command{
	Use:   "parse [expenses-file]",
	Short: "Round expenses up and compute their remanent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expenses, err := config.NewInputParser().LoadExpenses(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		txns, err := engine.Parse(cmd.Context(), expenses)
		if err != nil {
			return err
		}
		return writeReport(cmd, output.NewParseReport(txns))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [transactions-file]",
	Short: "Split transactions into valid and invalid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wage, txns, err := config.NewInputParser().LoadTransactions(args[0])
		if err != nil {
			return err
		}
		if flag, _ := cmd.Flags().GetString("wage"); flag != "" {
			if wage, err = decimal.NewFromString(flag); err != nil {
				return fmt.Errorf("invalid wage %q: %w", flag, err)
			}
		}
		return writeReport(cmd, output.NewValidationReport(validation.NewValidator().Validate(wage, txns)))
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter [request-file]",
	Short: "Apply q, p and k periods to the transactions of a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadRequest(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		res, err := engine.Filter(cmd.Context(), req.Windows, req.Transactions)
		if err != nil {
			return err
		}
		return writeReport(cmd, output.NewFilterReport(res))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [transactions-file]",
	Short: "Summarize spending and savings readiness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, txns, err := config.NewInputParser().LoadTransactions(args[0])
		if err != nil {
			return err
		}
		return writeReport(cmd, output.NewSummaryReport(summary.NewAnalyzer().Analyze(txns)))
	},
}

var returnsCmd = &cobra.Command{
	Use:   "returns [request-file]",
	Short: "Project the savings of every k period on one track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadRequest(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		track, _ := cmd.Flags().GetString("track")
		res, err := engine.Returns(cmd.Context(), *req, track)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, engine.Assumptions.TrackNames())
		}
		return writeReport(cmd, output.NewReturnsReport(res))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [request-file]",
	Short: "Compare the NPS and Index Fund tracks and recommend a split",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadRequest(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), *req)
		if err != nil {
			return err
		}
		set.ConfigPath = args[0]

		format, _ := cmd.Flags().GetString("format")
		return writeComparison(cmd.OutOrStdout(), format, set)
	},
}

func writeComparison(w io.Writer, format string, set *compare.ComparisonSet) error {
	var out string
	var err error

	switch format {
	case "table", "console", "text":
		out = (&compare.TableFormatter{}).Format(set)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		out += "\n"
	default:
		return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}

func init() {
	rootCmd.PersistentFlags().String("assumptions", "", "Path to an assumptions file overriding rates and tax rules")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	for _, cmd := range []*cobra.Command{parseCmd, validateCmd, filterCmd, summaryCmd, returnsCmd} {
		cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	}
	validateCmd.Flags().String("wage", "", "Monthly wage (overrides the file)")
	returnsCmd.Flags().StringP("track", "t", "nps", "Investment track (nps, index)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(returnsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
