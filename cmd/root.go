// Package cmd wires the dupefinder subcommands: scan, report, clean,
// backups, restore, and init-config.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dupefinder/config"
	"dupefinder/logging"
	"dupefinder/signalhandler"
)

var (
	cfgFile  string
	debug    bool
	logFile  string
	cfg      *config.Config
	cfgPath  string
	cfgFound bool
)

var rootCmd = &cobra.Command{
	Use:   "dupefinder",
	Short: "Find and curate duplicate images in a directory",
	Long: `Dupefinder scans a directory of images for exact and visually similar
duplicates, renders an interactive HTML report for manual curation, and
safely executes the approved deletions with automatic backups.

Typical workflow:

  dupefinder scan --source ~/Pictures/screenshots
  dupefinder report
  (open duplicate_report.html, select files, download delete_request.json)
  dupefinder clean --request delete_request.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env in the working directory feeds the DUPEFINDER_*
		// overrides; absence is the normal case.
		_ = godotenv.Load()

		var err error
		cfg, cfgPath, cfgFound, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("debug") {
			cfg.Logging.Debug = debug
		}
		if cmd.Flags().Changed("logfile") {
			expanded, err := config.ExpandPath(logFile)
			if err != nil {
				return err
			}
			cfg.Logging.File = expanded
		}

		if cfg.Logging.Debug {
			if err := logging.SetupLogger(cfg.Logging.File); err != nil {
				return err
			}
			if cfgFound {
				logging.LogInfo("configuration loaded from %s", cfgPath)
			}
		}

		signalhandler.SetupHandler()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseLogger()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default dupefinder.toml, then ~/.config/dupefinder/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to the log file")
	rootCmd.PersistentFlags().StringVar(&logFile, "logfile", "", "debug log file (default dupefinder.log)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(initConfigCmd)
}
