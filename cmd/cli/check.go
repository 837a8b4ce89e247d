package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netsurvey/netsurvey/internal/checker"
)

var (
	checkInputFile  string
	checkOutputFile string
	checkWorkers    int
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a list of URLs for reachability",
	Long: `Check every URL in the input CSV file for reachability. Each URL
gets a network-layer ping probe and a single HTTP request; a 302
response is followed exactly one hop. Results are written to a CSV
report and summarized in a table.`,
	Example: `  netsurvey check
  netsurvey check --input urls.csv --output results.csv
  netsurvey check --workers 50`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkInputFile, "input", "i", "", "input CSV file (first column is the URL)")
	checkCmd.Flags().StringVarP(&checkOutputFile, "output", "o", "", "output CSV report file")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "number of concurrent workers")
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()

	// Flags override the configuration file.
	if checkInputFile != "" {
		cfg.Checker.InputFile = checkInputFile
	}
	if checkOutputFile != "" {
		cfg.Checker.OutputFile = checkOutputFile
	}
	if checkWorkers > 0 {
		cfg.Checker.Workers = checkWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := checker.NewChecker(cfg.Checker)
	results, summary, err := c.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := checker.WriteTable(os.Stdout, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to render results table: %v\n", err)
	}
	fmt.Println()
	checker.WriteSummary(os.Stdout, summary)
	fmt.Printf("Report written to %s\n", cfg.Checker.OutputFile)
}
