// Package cmd is for command line interactions with the sfx application
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/sbliven/biojava-sub014/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "sfx",
	Short: `Find and count motifs in DNA, RNA and protein sequences.
Sequences are indexed in a generalized suffix tree`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is "+config.SettingsFile+")")
	RootCmd.PersistentFlags().StringP("alphabet", "a", "dna", "residue alphabet: dna, rna or protein")
	RootCmd.PersistentFlags().StringP("terminator", "t", "$", "character ending each sequence in the tree")
	RootCmd.PersistentFlags().BoolP("case-sensitive", "c", false, "keep the case of residues and queries")
	RootCmd.PersistentFlags().IntP("min-separation", "m", 0, "minimum distance between hits counted without overlap (default query length)")
	RootCmd.PersistentFlags().String("cache", "", "query result cache: memory, redis or memcache")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace tree construction to stderr")

	// Bind the parameters to viper
	viper.BindPFlag("alphabet", RootCmd.PersistentFlags().Lookup("alphabet"))
	viper.BindPFlag("terminator", RootCmd.PersistentFlags().Lookup("terminator"))
	viper.BindPFlag("case-sensitive", RootCmd.PersistentFlags().Lookup("case-sensitive"))
	viper.BindPFlag("min-separation", RootCmd.PersistentFlags().Lookup("min-separation"))
	viper.BindPFlag("cache.backend", RootCmd.PersistentFlags().Lookup("cache"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the settings file and SFX_ environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.SettingsDir)
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("sfx")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || cfgFile != "" {
			stderr.Fatalf("failed to read settings file: %v", err)
		}
	}
}
