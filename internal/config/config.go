// Package config reads the optional .hasmrc settings file: viper, an
// optional explicit path, else the user's home directory, YAML. A
// .hasmrc absent from the home directory is not an error; an explicit
// path that cannot be read is.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/Manu343726/hasm/pkg/utils"
)

// Config holds the settings .hasmrc may override. Every field has a
// zero-value-safe default so a missing file changes nothing.
type Config struct {
	OutputSuffix string
	LogLevel     string
}

// Default returns the settings used when no .hasmrc is present.
func Default() Config {
	return Config{OutputSuffix: ".obj", LogLevel: "info"}
}

// Load reads .hasmrc from cfgFile if given, otherwise from the user's
// home directory, falling back to Default() for any key left unset.
// When an explicit cfgFile cannot be read, it returns Default() along
// with the read error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("output_suffix", ".obj")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), utils.MakeError(err, "resolving home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".hasmrc")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return Default(), nil
		}
		if cfgFile != "" {
			return Default(), utils.MakeError(err, "reading config file %s", cfgFile)
		}
		return Default(), nil
	}

	return Config{
		OutputSuffix: v.GetString("output_suffix"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}
