package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "SATCHEL"

	// Config keys.
	cfgKeyBackend     = "backend"
	cfgKeyCapacity    = "capacity"
	cfgKeyDataDir     = "data_dir"
	cfgKeyJournal     = "journal"
	cfgKeyMetricsFile = "metrics_file"
	cfgKeySeedFile    = "seed_file"
)

// envKeys lists the keys that SATCHEL_<KEY> may override. data_dir is left
// out; paths.ResolveDataDir handles SATCHEL_DATA_DIR with its own
// precedence.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyCapacity,
	cfgKeyJournal,
	cfgKeyMetricsFile,
	cfgKeySeedFile,
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults and environment still apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, "")
	v.SetDefault(cfgKeyCapacity, types.DefaultCapacity)
	v.SetDefault(cfgKeyJournal, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// sessionConfig builds the session configuration from the loaded Viper
// instance. Backend may be empty, meaning the session asks for it.
func (a *app) sessionConfig() types.Config {
	return types.Config{
		Backend:     a.v.GetString(cfgKeyBackend),
		Capacity:    a.v.GetInt(cfgKeyCapacity),
		DataDir:     a.dataDir,
		Journal:     a.v.GetBool(cfgKeyJournal),
		MetricsFile: a.v.GetString(cfgKeyMetricsFile),
		SeedFile:    a.v.GetString(cfgKeySeedFile),
	}
}
