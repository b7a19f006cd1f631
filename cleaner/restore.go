package cleaner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dupefinder/logging"
	"dupefinder/utils"
)

// Restore copies the files of one backup snapshot back to their
// original locations, taken from the snapshot's deletion log. destDir,
// when set, overrides the logged locations and is required for older
// logs that recorded no original paths. The log itself is never
// restored. Per-file failures are warnings; the count of files put
// back is returned.
func Restore(backupDir, destDir string, out io.Writer) (int, error) {
	info, err := os.Stat(backupDir)
	if err != nil {
		return 0, fmt.Errorf("backup directory %s: %w", backupDir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("backup path %s is not a directory", backupDir)
	}

	deletionLog, err := readLog(backupDir)
	if err != nil {
		return 0, fmt.Errorf("read deletion log in %s: %w", backupDir, err)
	}

	// Map each backup file name to the original path it came from.
	originals := make(map[string]string, len(deletionLog.DeletedFiles))
	for i, name := range deletionLog.DeletedFiles {
		if i < len(deletionLog.DeletedPaths) {
			originals[name] = deletionLog.DeletedPaths[i]
		}
	}
	if len(originals) == 0 && destDir == "" {
		return 0, fmt.Errorf("deletion log in %s records no original paths; a destination directory is required", backupDir)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return 0, fmt.Errorf("read backup directory %s: %w", backupDir, err)
	}

	restored := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == logFileName {
			continue
		}

		src := filepath.Join(backupDir, entry.Name())
		dest := originals[entry.Name()]
		if destDir != "" {
			dest = filepath.Join(destDir, entry.Name())
		}
		if dest == "" {
			fmt.Fprintf(out, "WARNING: no original path recorded for %s, skipping\n", entry.Name())
			logging.LogWarning("restore skipped %s: no original path in log", src)
			continue
		}

		if err := utils.CopyFile(src, dest); err != nil {
			fmt.Fprintf(out, "ERROR restoring %s: %v\n", entry.Name(), err)
			logging.LogError("restore failed for %s: %v", src, err)
			continue
		}

		fmt.Fprintf(out, "Restored: %s\n", dest)
		restored++
	}

	return restored, nil
}
