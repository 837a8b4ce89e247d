package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netsurvey/netsurvey/internal/analyze"
	"github.com/netsurvey/netsurvey/internal/ollama"
)

var (
	analyzeTargetsFile string
	analyzeOutputDir   string
	analyzeModel       string
	analyzeOllamaURL   string
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan targets and generate AI security reports",
	Long: `Run an aggressive nmap scan against every target listed in the
targets file and ask a local Ollama model to assess the results. One
Markdown report is written per target.

Targets are read one per line; blank lines and lines starting with '#'
are skipped. Failed targets are logged and skipped without aborting
the run.`,
	Example: `  netsurvey analyze
  netsurvey analyze --targets hosts.txt --output-dir reports
  netsurvey analyze --model llama3:8b`,
	Args: cobra.NoArgs,
	Run:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeTargetsFile, "targets", "t", "", "targets file (one host or CIDR per line)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "directory for generated reports")
	analyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "Ollama model to use for analysis")
	analyzeCmd.Flags().StringVar(&analyzeOllamaURL, "ollama-url", "", "base URL of the Ollama service")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()

	// Flags override the configuration file.
	if analyzeTargetsFile != "" {
		cfg.Analyze.TargetsFile = analyzeTargetsFile
	}
	if analyzeOutputDir != "" {
		cfg.Analyze.OutputDir = analyzeOutputDir
	}
	if analyzeModel != "" {
		cfg.Analyze.Ollama.Model = analyzeModel
	}
	if analyzeOllamaURL != "" {
		cfg.Analyze.Ollama.BaseURL = analyzeOllamaURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ollama.NewClient(cfg.Analyze.Ollama)
	orchestrator := analyze.New(cfg.Analyze, client)

	if err := orchestrator.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
