package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dupefinder/cleaner"
	"dupefinder/config"
)

var cleanRequest string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Execute a delete request with automatic backup",
	Long: `Clean reads a delete_request.json produced by the HTML report, copies
every listed file into a timestamped backup directory, removes the
originals, and writes a deletion log into the backup directory.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanRequest, "request", "", "delete request file (default delete_request.json)")
}

func runClean(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("request") {
		expanded, err := config.ExpandPath(cleanRequest)
		if err != nil {
			return err
		}
		cfg.Clean.Request = expanded
	}

	request, err := cleaner.ReadRequest(cfg.Clean.Request)
	if err != nil {
		return err
	}

	deletionLog, err := cleaner.Execute(request, cfg.Clean.BackupRoot, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Deleted %d of %d files (%d errors)\n",
		deletionLog.SuccessfullyDeleted, deletionLog.TotalRequested, deletionLog.Errors)
	fmt.Printf("Backup and deletion log: %s\n", deletionLog.BackupDirectory)
	fmt.Println("Run 'dupefinder restore <backup-dir>' to undo this deletion.")

	return nil
}
