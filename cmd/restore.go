package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dupefinder/cleaner"
	"dupefinder/config"
)

var restoreDest string

var restoreCmd = &cobra.Command{
	Use:   "restore BACKUP_DIR",
	Short: "Restore the files of a backup snapshot",
	Long: `Restore copies the files of one backup snapshot back to the original
locations recorded in its deletion log. Use --dest to restore into a
different directory instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVar(&restoreDest, "dest", "", "restore into this directory instead of the original locations")
}

func runRestore(cmd *cobra.Command, args []string) error {
	backupDir, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}

	destDir := ""
	if restoreDest != "" {
		destDir, err = config.ExpandPath(restoreDest)
		if err != nil {
			return err
		}
	}

	restored, err := cleaner.Restore(backupDir, destDir, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nRestored %d files from %s\n", restored, backupDir)
	return nil
}
