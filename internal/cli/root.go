// Package cli implements the satchel command-line interface: the interactive
// play session, the algorithm benchmark, the journal report, init and
// version.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/satchel/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationLog marks commands whose log goes to the data directory
// because the terminal belongs to the TUI.
const (
	annotationLog = "log"
	logToFile     = "file"
)

// app holds the state shared by all subcommands of one root command.
type app struct {
	// Global flag values.
	configDirFlag string
	dataDirFlag   string
	verbose       bool

	// Resolved by PersistentPreRunE.
	configDir string
	dataDir   string
	v         *viper.Viper
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "satchel" command with global flags and
// all subcommands registered. Running it without a subcommand starts play.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "satchel",
		Short: "An inventory manager for role-playing-game items",
		Long: `Satchel keeps an inventory of RPG items in a bounded array or a linked chain
and shows how many comparisons and swaps each search and sort costs.

Run without a subcommand to start the interactive session.`,
		Version:     Version,
		Annotations: map[string]string{annotationLog: logToFile},
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.preRun,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		Args: cobra.NoArgs,
		RunE: a.runPlay,
	}

	root.PersistentFlags().StringVar(&a.configDirFlag, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDirFlag, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	addPlayFlags(root)

	root.AddCommand(a.newPlayCmd())
	root.AddCommand(a.newBenchCmd())
	root.AddCommand(a.newReportCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	os.Exit(exitCode(root.Execute()))
}

// preRun resolves directories, loads configuration and builds the logger.
func (a *app) preRun(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.configDirFlag)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return userError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError(fmt.Errorf("resolve data dir: %w", err))
	}
	a.configDir, a.dataDir, a.v = configDir, dataDir, v

	logger, err := a.buildLogger(cmd.Annotations[annotationLog] == logToFile)
	if err != nil {
		return systemError(err)
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("Configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("config_file", v.ConfigFileUsed()),
	)
	return nil
}

// buildLogger returns a production logger at info level, or debug with
// --verbose. File logging writes to satchel.log in the data directory.
func (a *app) buildLogger(toFile bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if toFile {
		if err := os.MkdirAll(a.dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		logPath := filepath.Join(a.dataDir, paths.LogFileName)
		config.OutputPaths = []string{logPath}
		config.ErrorOutputPaths = []string{logPath}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input or configuration.
func userError(err error) error { return &exitError{code: exitUserError, err: err} }

// systemError marks err as caused by the environment (filesystem, database).
func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by Execute to a process exit code.
// Unclassified errors, such as cobra's argument errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
