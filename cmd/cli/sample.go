package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netsurvey/netsurvey/internal/sampler"
)

var sampleCount int

// sampleCmd represents the sample command.
var sampleCmd = &cobra.Command{
	Use:   "sample [range...]",
	Short: "Sample random host addresses from CIDR ranges",
	Long: `Sample a set of unique random host addresses from one or more CIDR
ranges and print them as a comma-separated list.

Network and broadcast addresses are excluded. Invalid ranges are
skipped with a warning. The count must be between 10 and 5000; when
the ranges contain fewer usable addresses than requested, all of them
are returned.`,
	Example: `  netsurvey sample 192.168.1.0/24
  netsurvey sample 10.0.0.0/16 172.16.0.0/24 --count 500
  netsurvey sample 203.0.113.0/28 --count 10`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", sampler.MinCount,
		"number of addresses to sample (10-5000)")
}

func runSample(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()

	s := sampler.New(sampler.WithMaxPoolSize(cfg.Sampler.MaxPoolSize))
	result, err := s.Sample(args, sampleCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result == "" {
		fmt.Fprintln(os.Stderr, "No usable addresses in the given ranges")
		return
	}
	fmt.Println(result)
}
