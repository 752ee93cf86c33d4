package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kestrel-lab/reap/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration.

Configuration is read from ` + "`~/.config/reap/config.yml`" + ` (respecting
XDG_CONFIG_HOME); unset fields fall back to built-in defaults.`,
	RunE: runConfig,
}

// ConfigResult is the response for the config command.
type ConfigResult struct {
	Path   string         `json:"path"`
	Exists bool           `json:"exists"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	path := config.Path()
	exists := false
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			exists = true
		}
	}

	if humanOutput {
		fmt.Printf("Config file: %s (exists: %v)\n\n", path, exists)
		data, err := yaml.Marshal(cfg)
		if err != nil {
			exitWithError(ExitError, "encoding config: %v", err)
		}
		os.Stdout.Write(data)
	} else {
		outputJSON(ConfigResult{Path: path, Exists: exists, Config: cfg})
	}

	return nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine config path")
	}

	if _, err := os.Stat(path); err == nil {
		exitWithError(ExitConfigError, "config file already exists: %s", path)
	}

	if err := config.Default().Save(path); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Wrote %s\n", path)
	} else {
		outputJSON(map[string]string{"status": "created", "path": path})
	}

	return nil
}
