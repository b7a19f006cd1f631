package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dupefinder/config"
	"dupefinder/report"
	"dupefinder/scanner"
)

var (
	scanSource    string
	scanOutput    string
	scanThreshold float64
	scanHashSize  int
	scanRecursive bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory for duplicate images",
	Long: `Scan enumerates the images in a directory, digests every file,
fingerprints every decodable image, groups exact and visually similar
duplicates, and writes the detection record as JSON.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanSource, "source", "s", "", "directory of images to scan")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "detection record path (default duplicate_results.json next to the source)")
	scanCmd.Flags().Float64VarP(&scanThreshold, "threshold", "t", 0, "similarity threshold in [0,1]")
	scanCmd.Flags().IntVar(&scanHashSize, "hash-size", 0, "fingerprint grid size (hash-size squared bits)")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false, "also scan subdirectories")
}

func runScan(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("source") {
		expanded, err := config.ExpandPath(scanSource)
		if err != nil {
			return err
		}
		cfg.Scan.Source = expanded
	}
	if cmd.Flags().Changed("output") {
		expanded, err := config.ExpandPath(scanOutput)
		if err != nil {
			return err
		}
		cfg.Scan.Output = expanded
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Scan.Threshold = scanThreshold
	}
	if cmd.Flags().Changed("hash-size") {
		cfg.Scan.HashSize = scanHashSize
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Scan.Recursive = scanRecursive
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Scan.Source == "" {
		return fmt.Errorf("no source directory: set --source, scan.source, or DUPEFINDER_SOURCE")
	}

	result, stats, err := scanner.Run(scanner.Options{
		Source:    cfg.Scan.Source,
		Threshold: cfg.Scan.Threshold,
		HashSize:  cfg.Scan.HashSize,
		Recursive: cfg.Scan.Recursive,
		Progress:  os.Stdout,
	})
	if err != nil {
		return err
	}

	outputPath := cfg.ResultsPath()
	if err := report.WriteRecord(outputPath, result); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(renderTable(
		[]string{"Summary", "Count"},
		[][]string{
			{"Total images", fmt.Sprintf("%d", stats.TotalImages)},
			{"Exact duplicate groups", fmt.Sprintf("%d", stats.ExactGroups)},
			{"Similar groups", fmt.Sprintf("%d", stats.SimilarGroups)},
			{"Skipped (unreadable)", fmt.Sprintf("%d", stats.SkippedUnreadable)},
			{"Digest failures", fmt.Sprintf("%d", stats.DigestFailures)},
			{"Decode failures", fmt.Sprintf("%d", stats.DecodeFailures)},
			{"Duration", stats.Duration.Round(10 * time.Millisecond).String()},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
	fmt.Printf("\nDetection record written to %s\n", outputPath)
	fmt.Println("Run 'dupefinder report' to generate the curation report.")

	return nil
}
