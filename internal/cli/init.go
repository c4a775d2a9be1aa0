package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend     string `yaml:"backend"`
	Capacity    int    `yaml:"capacity"`
	DataDir     string `yaml:"data_dir,omitempty"`
	Journal     bool   `yaml:"journal"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
	SeedFile    string `yaml:"seed_file,omitempty"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize satchel configuration and journal",
		Long:  "Create the configuration and data directories, write a default config.yaml if missing, and create the journal database.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return systemError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(a.configDir, paths.ConfigFileName)
	written, err := writeConfigIfMissing(configPath, a.dataDirFlag)
	if err != nil {
		return systemError(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.logger.Info("Default configuration written", zap.String("path", configPath))
	}

	j, err := journal.Open(a.dataDir)
	if err != nil {
		return systemError(fmt.Errorf("initialize journal: %w", err))
	}
	if err := j.Close(); err != nil {
		return systemError(fmt.Errorf("finalize journal: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Satchel initialized\nconfig: %s\ndata:   %s\n", configPath, a.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist and reports whether it wrote one. An explicit --data-dir is
// recorded so later runs find the same journal.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Capacity: types.DefaultCapacity,
		Journal:  true,
	}
	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return false, err
		}
		cfg.DataDir = abs
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
