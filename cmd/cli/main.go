package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/plan"
	"github.com/yurifrl/secstmt/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:           "secstmt",
	Short:         "Parse and validate securities and cash statement messages",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

// setup resolves configuration and builds a processor for a subcommand.
func setup(cmd *cobra.Command) (*config.Config, *service.Processor, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cliFilters.validate(); err != nil {
		return nil, nil, err
	}
	processor, err := service.NewProcessor(cfg, cfg.NewLogger("secstmt"))
	if err != nil {
		return nil, nil, err
	}
	processor.SetFilter(cliFilters.toFilterFunc())
	return cfg, processor, nil
}

func finish(cmd *cobra.Command, cfg *config.Config, results []*service.Result) error {
	failed, err := printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, results)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(results))
	}
	return nil
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <input_path>...",
	Short: "Parse statement files, directories or glob patterns",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, processor, err := setup(cmd)
		if err != nil {
			return err
		}

		var results []*service.Result
		for _, pattern := range args {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no files found matching pattern %s", pattern)
			}
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					return err
				}
				if info.IsDir() {
					dirResults, err := processor.ScanDirectory(match)
					if err != nil {
						return err
					}
					results = append(results, dirResults...)
					continue
				}
				results = append(results, processor.ProcessFile(match, cfg.Language))
			}
		}
		if err := processor.Export(results...); err != nil {
			return err
		}
		return finish(cmd, cfg, results)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Parse every statement listed in a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Plan preview for %s\n", planPath)
			p.Print(cmd.OutOrStdout())
			return nil
		}

		cfg, processor, err := setup(cmd)
		if err != nil {
			return err
		}
		results, err := processor.ProcessPlan(p, filepath.Dir(planPath))
		if err != nil {
			return err
		}
		return finish(cmd, cfg, results)
	},
}

var kindStyle = lipgloss.NewStyle().Bold(true)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the diagnostic message templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, kind := range catalog.Kinds() {
			fmt.Fprintln(out, kindStyle.Render(string(kind)))
			fmt.Fprintf(out, "  %s\n", catalog.Template(kind, cfg.Language))
		}
		return nil
	},
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	flags.StringP("lang", "l", "", "Message language (es, en or a BCP 47 tag)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.StringP("output", "o", "", "Output format (pretty, json, summary, csv)")
	flags.String("messages", "", "YAML file overriding message templates")
	flags.String("xlsx", "", "Write balances and movements to this workbook")
	flags.String("output-dir", "", "Directory for generated CSV files (default: next to input)")

	// Filter flags (csv output)
	flags.StringVar(&cliFilters.startDate, "start", "", "Start trade date (YYYY-MM-DD)")
	flags.StringVar(&cliFilters.endDate, "end", "", "End trade date (YYYY-MM-DD)")
	flags.Float64Var(&cliFilters.minAmount, "min", 0, "Minimum signed amount")
	flags.Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum signed amount")
	flags.StringVar(&cliFilters.subject, "subject", "", "Only this ISIN or page number")
	flags.StringVar(&cliFilters.reference, "reference", "", "Only this message reference")

	planCmd.Flags().Bool("dry-run", false, "Only list the plan's statements")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
