// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// SettingsDir is where sfx keeps its settings file
	SettingsDir = filepath.Join(home(), ".sfx")

	// SettingsFile is the default settings file path
	SettingsFile = filepath.Join(SettingsDir, "config.toml")
)

// CacheConfig is settings for the query result cache
type CacheConfig struct {
	// Backend is one of "", "none", "memory", "redis" or "memcache"
	Backend string `mapstructure:"backend" toml:"backend"`

	// Addr is the host:port of a redis or memcache server
	Addr string `mapstructure:"addr" toml:"addr"`

	// Password for redis
	Password string `mapstructure:"password" toml:"password"`

	// DB is the redis database number
	DB int `mapstructure:"db" toml:"db"`

	// Expire is the number of seconds a result stays cached
	Expire int `mapstructure:"expire" toml:"expire"`

	// MaxCount is the most results a memory cache holds, 0 for no limit
	MaxCount int `mapstructure:"max-count" toml:"max-count"`
}

// Config is the root-level settings struct and is a mix
// of settings available in config.toml and those
// available from the command line
type Config struct {
	// Terminator ends every sequence in the suffix tree, one character
	Terminator string `mapstructure:"terminator" toml:"terminator"`

	// Alphabet residues are validated against: dna, rna or protein
	Alphabet string `mapstructure:"alphabet" toml:"alphabet"`

	// CaseSensitive keeps the case of residues, otherwise they are upper-cased
	CaseSensitive bool `mapstructure:"case-sensitive" toml:"case-sensitive"`

	// MinSeparation between hits counted without overlap, 0 for the query length
	MinSeparation int `mapstructure:"min-separation" toml:"min-separation"`

	// Verbose traces tree construction to stderr
	Verbose bool `mapstructure:"verbose" toml:"verbose"`

	// Cache of query results
	Cache CacheConfig `mapstructure:"cache" toml:"cache"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults registers the default of every setting with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("terminator", "$")
	v.SetDefault("alphabet", "dna")
	v.SetDefault("case-sensitive", false)
	v.SetDefault("min-separation", 0)
	v.SetDefault("verbose", false)
	v.SetDefault("cache.backend", "")
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.expire", 3600)
	v.SetDefault("cache.max-count", 0)
}

// New returns a new Config struct populated by
// Viper settings (either from the local config.toml)
// and/or command line arguments
func New() *Config {
	c, err := FromViper(viper.GetViper())
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	return c
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if _, err := c.TermChar(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the settings sfx runs with when nothing is configured.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	c, _ := FromViper(v)
	return c
}

// TermChar returns the terminator as a byte.
func (c *Config) TermChar() (byte, error) {
	if len(c.Terminator) != 1 {
		return 0, fmt.Errorf("terminator must be one character, got %q", c.Terminator)
	}
	return c.Terminator[0], nil
}

// home returns the user's home directory, or the working directory
// if there is none.
func home() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
