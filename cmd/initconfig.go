package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dupefinder/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [PATH]",
	Short: "Write a commented sample configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			expanded, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			path = expanded
		} else {
			defaultPath, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		if err := config.CreateSample(path); err != nil {
			return err
		}

		fmt.Printf("Sample configuration written to %s\n", path)
		return nil
	},
}
