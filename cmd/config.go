package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sbliven/biojava-sub014/config"
	"github.com/spf13/cobra"
)

// configCmd is for logging, and optionally saving, the settings in effect.
var configCmd = &cobra.Command{
	Use:                        "config",
	Short:                      "Log the settings in effect as TOML",
	Run:                        configExec,
	SuggestionsMinimumDistance: 2,
	Example:                    "  sfx config --alphabet protein --write",
	Long: `Log the settings in effect, after the settings file, SFX_ environment
variables and flags are applied, in the settings file's TOML format.

With --write the settings are saved to the settings file, ` + config.SettingsFile + `
unless --config names another.`,
}

// set flags
func init() {
	configCmd.Flags().BoolP("write", "w", false, "save the settings to the settings file")

	RootCmd.AddCommand(configCmd)
}

func configExec(cmd *cobra.Command, args []string) {
	conf := config.New()

	if err := writeSettings(os.Stdout, conf); err != nil {
		stderr.Fatal(err)
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		stderr.Fatal(err)
	}
	if !write {
		return
	}

	filename := config.SettingsFile
	if cfgFile != "" {
		filename = cfgFile
	}
	if err := saveSettings(filename, conf); err != nil {
		stderr.Fatal(err)
	}
	stderr.Printf("saved settings to %s\n", filename)
}

// writeSettings encodes conf to w as TOML.
func writeSettings(w io.Writer, conf *config.Config) error {
	if err := toml.NewEncoder(w).Encode(conf); err != nil {
		return fmt.Errorf("failed to encode settings: %v", err)
	}
	return nil
}

// saveSettings writes conf to filename, creating its directory if needed.
func saveSettings(filename string, conf *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to make settings directory: %v", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %v", err)
	}
	defer f.Close()

	if err := writeSettings(f, conf); err != nil {
		return err
	}
	return f.Sync()
}
