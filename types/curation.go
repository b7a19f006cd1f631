package types

// DeleteRequest is the file list a user approved for deletion in the
// HTML report.
type DeleteRequest struct {
	Timestamp     string   `json:"timestamp"`
	FilesToDelete []string `json:"files_to_delete"`
	TotalFiles    int      `json:"total_files"`
	ReportID      string   `json:"report_id,omitempty"`
}

// FailedFile records one file the deletion executor could not process.
type FailedFile struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// DeletionLog is written into each backup directory after a deletion
// run. DeletedFiles holds the base names present in the backup
// directory, DeletedPaths the original absolute paths in the same
// order; restore uses the latter to put files back.
type DeletionLog struct {
	Timestamp           string       `json:"timestamp"`
	BackupDirectory     string       `json:"backup_directory"`
	TotalRequested      int          `json:"total_requested"`
	SuccessfullyDeleted int          `json:"successfully_deleted"`
	Errors              int          `json:"errors"`
	DeletedFiles        []string     `json:"deleted_files"`
	DeletedPaths        []string     `json:"deleted_paths,omitempty"`
	FailedFiles         []FailedFile `json:"failed_files,omitempty"`
	ReportID            string       `json:"report_id,omitempty"`
}

// BackupInfo summarizes one backup snapshot for listing.
type BackupInfo struct {
	Name      string
	Path      string
	Timestamp string
	Deleted   int
	HasLog    bool
}
