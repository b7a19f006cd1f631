package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dupefinder/cleaner"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List deletion backup snapshots",
	RunE:  runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	backups, err := cleaner.ListBackups(cfg.Clean.BackupRoot)
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Printf("No backups found under %s\n", cfg.Clean.BackupRoot)
		return nil
	}

	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		timestamp := b.Timestamp
		deleted := fmt.Sprintf("%d", b.Deleted)
		if !b.HasLog {
			timestamp = "(missing or corrupt log)"
			deleted = "-"
		}
		rows = append(rows, []string{b.Name, timestamp, deleted})
	}

	fmt.Println(renderTable(
		[]string{"Backup", "Timestamp", "Deleted"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))

	return nil
}
