package cleaner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dupefinder/types"
)

// ListBackups enumerates the backup snapshots under root, sorted by
// directory name (which sorts by creation time, given the timestamped
// naming). A snapshot with a missing or corrupt log is listed as such,
// not treated as an error.
func ListBackups(root string) ([]types.BackupInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read backup root %s: %w", root, err)
	}

	var backups []types.BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), backupDirPrefix) {
			continue
		}

		info := types.BackupInfo{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		}

		if deletionLog, err := readLog(info.Path); err == nil {
			info.HasLog = true
			info.Timestamp = deletionLog.Timestamp
			info.Deleted = deletionLog.SuccessfullyDeleted
		}

		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Name < backups[j].Name })

	return backups, nil
}
