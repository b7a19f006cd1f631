// Package cleaner executes user-approved delete requests: every file
// is copied into a timestamped backup directory before removal, the
// outcome is logged next to the backups, and a snapshot can be
// restored or listed later.
package cleaner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dupefinder/logging"
	"dupefinder/types"
	"dupefinder/utils"
)

// backupDirFormat is the timestamp layout in backup directory names.
const backupDirFormat = "20060102_150405"

// backupDirPrefix marks directories holding one deletion snapshot.
const backupDirPrefix = "backup_deletions_"

// logFileName is the deletion log inside each backup directory.
const logFileName = "deletion_log.json"

// ErrEmptyRequest is returned when a delete request lists no files.
var ErrEmptyRequest = errors.New("delete request contains no files")

// ReadRequest loads and validates a delete request document.
func ReadRequest(path string) (*types.DeleteRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read delete request %s: %w", path, err)
	}

	var request types.DeleteRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("parse delete request %s: %w", path, err)
	}
	if len(request.FilesToDelete) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRequest, path)
	}

	return &request, nil
}

// Execute processes a delete request: creates a backup directory under
// backupRoot, copies each requested file into it, removes the
// original, and writes the deletion log. Per-file failures are counted
// and logged, never fatal; the original stays in place whenever its
// backup copy failed. Progress lines go to out.
func Execute(request *types.DeleteRequest, backupRoot string, out io.Writer) (*types.DeletionLog, error) {
	backupDir := filepath.Join(backupRoot, backupDirPrefix+time.Now().Format(backupDirFormat))
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory %s: %w", backupDir, err)
	}

	fmt.Fprintf(out, "Backup directory: %s\n", backupDir)
	fmt.Fprintf(out, "Processing %d files...\n", len(request.FilesToDelete))

	deletionLog := &types.DeletionLog{
		Timestamp:       time.Now().Format(time.RFC3339),
		BackupDirectory: backupDir,
		TotalRequested:  len(request.FilesToDelete),
		ReportID:        request.ReportID,
	}

	for _, path := range request.FilesToDelete {
		name := filepath.Base(path)

		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(out, "WARNING: file not found: %s\n", name)
			logging.LogWarning("delete skipped, file not found: %s", path)
			deletionLog.Errors++
			deletionLog.FailedFiles = append(deletionLog.FailedFiles, types.FailedFile{
				File: name, Error: "file not found",
			})
			continue
		}

		backupName := uniqueName(backupDir, name)
		if err := utils.CopyFile(path, filepath.Join(backupDir, backupName)); err != nil {
			fmt.Fprintf(out, "ERROR backing up %s: %v\n", name, err)
			logging.LogError("backup failed for %s: %v", path, err)
			deletionLog.Errors++
			deletionLog.FailedFiles = append(deletionLog.FailedFiles, types.FailedFile{
				File: name, Error: err.Error(),
			})
			continue
		}

		if err := os.Remove(path); err != nil {
			fmt.Fprintf(out, "ERROR deleting %s: %v\n", name, err)
			logging.LogError("delete failed for %s: %v", path, err)
			deletionLog.Errors++
			deletionLog.FailedFiles = append(deletionLog.FailedFiles, types.FailedFile{
				File: name, Error: err.Error(),
			})
			continue
		}

		fmt.Fprintf(out, "Deleted: %s\n", name)
		logging.LogInfo("deleted %s (backup %s)", path, backupName)
		deletionLog.SuccessfullyDeleted++
		deletionLog.DeletedFiles = append(deletionLog.DeletedFiles, backupName)
		deletionLog.DeletedPaths = append(deletionLog.DeletedPaths, path)
	}

	if err := writeLog(backupDir, deletionLog); err != nil {
		return nil, err
	}

	return deletionLog, nil
}

// uniqueName picks a backup file name that does not collide with an
// earlier copy. Recursive scans can legitimately delete two files with
// the same base name from different directories.
func uniqueName(dir, name string) string {
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		ext := filepath.Ext(name)
		candidate = fmt.Sprintf("%s_%d%s", name[:len(name)-len(ext)], i, ext)
	}
}

// writeLog stores the deletion log inside the backup directory. The
// log is the snapshot's source of truth for restore and listing, so a
// failed write is terminal.
func writeLog(backupDir string, deletionLog *types.DeletionLog) error {
	data, err := json.MarshalIndent(deletionLog, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize deletion log: %w", err)
	}
	data = append(data, '\n')

	logPath := filepath.Join(backupDir, logFileName)
	if err := utils.WriteFileAtomic(logPath, data, 0o644); err != nil {
		return fmt.Errorf("write deletion log %s: %w", logPath, err)
	}
	return nil
}

// readLog loads the deletion log of one backup directory.
func readLog(backupDir string) (*types.DeletionLog, error) {
	data, err := os.ReadFile(filepath.Join(backupDir, logFileName))
	if err != nil {
		return nil, err
	}

	var deletionLog types.DeletionLog
	if err := json.Unmarshal(data, &deletionLog); err != nil {
		return nil, err
	}
	return &deletionLog, nil
}
