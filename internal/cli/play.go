package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/catalog"
	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/internal/metrics"
	"github.com/mesh-intelligence/satchel/internal/session"
	"github.com/mesh-intelligence/satchel/internal/tui"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// playFlagKeys maps play flags to the config keys they override.
var playFlagKeys = map[string]string{
	"backend":  cfgKeyBackend,
	"capacity": cfgKeyCapacity,
	"seed":     cfgKeySeedFile,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "inventory structure: bounded or linked (default: ask)")
	cmd.Flags().Int("capacity", types.DefaultCapacity, "capacity of the bounded inventory")
	cmd.Flags().String("seed", "", "YAML catalog of items to insert at start")
}

func (a *app) newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive inventory session",
		Long: `Play opens the menu-driven session. The structure is chosen once, either
with --backend, the backend config key, or at the first prompt.

Example:
  satchel play
  satchel play --backend bounded --capacity 20 --seed items.yaml`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLog: logToFile},
		RunE:        a.runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, args []string) error {
	for name, key := range playFlagKeys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return systemError(fmt.Errorf("bind flag %s: %w", name, err))
		}
	}

	cfg := a.sessionConfig()
	if cfg.Backend != "" {
		if err := cfg.Validate(); err != nil {
			return userError(err)
		}
	}

	var seed []types.Item
	if cfg.SeedFile != "" {
		items, err := catalog.Load(cfg.SeedFile)
		if err != nil {
			return userError(err)
		}
		seed = items
	}

	open := func(backend string) (*session.Controller, error) {
		c := cfg
		c.Backend = backend
		return a.openSession(c, seed)
	}

	var ctrl *session.Controller
	if cfg.Backend != "" {
		c, err := open(cfg.Backend)
		if err != nil {
			return systemError(err)
		}
		ctrl = c
	}

	final, err := tui.Run(tui.New(ctrl, open), tui.ProgramOptions(cmd.InOrStdin(), cmd.OutOrStdout())...)
	if c := final.Controller(); c != nil {
		if cerr := c.Close(); cerr != nil {
			a.logger.Warn("Failed to close session", zap.Error(cerr))
		}
	}
	if err != nil {
		return systemError(fmt.Errorf("run menu: %w", err))
	}
	return nil
}

// openSession creates the controller for cfg with logging, metrics and, when
// enabled, the journal, then inserts the seed catalog.
func (a *app) openSession(cfg types.Config, seed []types.Item) (*session.Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithRecorder(metrics.NewRecorder()),
	}

	var j *journal.Journal
	if cfg.Journal {
		opened, err := journal.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		j = opened
		sessionID, err := j.StartSession(cfg.Backend, cfg.Capacity)
		if err != nil {
			j.Close()
			return nil, err
		}
		a.logger.Info("Journal session started", zap.String("session_id", sessionID))
		opts = append(opts, session.WithJournal(j))
	}

	ctrl, err := session.New(cfg, opts...)
	if err != nil {
		if j != nil {
			j.Close()
		}
		return nil, err
	}

	if len(seed) > 0 {
		rejected := 0
		for _, o := range ctrl.Seed(seed) {
			if !o.OK {
				rejected++
				a.logger.Warn("Seed item rejected", zap.Int("id", o.Item.ItemID), zap.Error(o.Err))
			}
		}
		a.logger.Info("Seed catalog loaded",
			zap.String("file", cfg.SeedFile),
			zap.Int("inserted", len(seed)-rejected),
			zap.Int("rejected", rejected),
		)
	}
	return ctrl, nil
}
