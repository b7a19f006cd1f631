package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dupefinder/config"
	"dupefinder/report"
)

var (
	reportInput    string
	reportOutput   string
	reportMetadata bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the interactive HTML curation report",
	Long: `Report renders a detection record as a single self-contained HTML
page with inline thumbnails. Open it in a browser, mark files to keep
or delete, and download the resulting delete_request.json.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "detection record to render (default the scan output)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "HTML report path (default duplicate_report.html next to the input)")
	reportCmd.Flags().BoolVar(&reportMetadata, "with-metadata", false, "include camera metadata extracted with exiftool")
}

func runReport(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("input") {
		expanded, err := config.ExpandPath(reportInput)
		if err != nil {
			return err
		}
		cfg.Report.Input = expanded
	}
	if cmd.Flags().Changed("output") {
		expanded, err := config.ExpandPath(reportOutput)
		if err != nil {
			return err
		}
		cfg.Report.Output = expanded
	}
	if cmd.Flags().Changed("with-metadata") {
		cfg.Report.WithMetadata = reportMetadata
	}

	inputPath := cfg.ReportInputPath()
	record, err := report.ReadRecord(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded detection record: %d images, %d exact groups, %d similar groups\n",
		record.TotalImages, len(record.ExactGroups), len(record.SimilarGroups))

	renderer, err := report.NewRenderer(report.Options{
		ThumbMaxSize: cfg.Report.ThumbMaxSize,
		ThumbQuality: cfg.Report.ThumbQuality,
		WithMetadata: cfg.Report.WithMetadata,
	})
	if err != nil {
		return err
	}

	outputPath := cfg.ReportOutputPath()
	fmt.Println("Rendering thumbnails, this can take a moment...")
	if err := renderer.RenderFile(record, outputPath); err != nil {
		return err
	}

	fmt.Printf("HTML report written to %s\n", outputPath)
	fmt.Println("Open it in a browser to curate the duplicates.")

	return nil
}
