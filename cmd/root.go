package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/kartu/internal/config"
	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/logging"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kartu",
	Short: "Indonesian flashcards in the terminal",
	Long:  "kartu drills Indonesian words and sentences in both directions and keeps your progress in a local database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/kartu/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides KARTU_DB)")
	flags.String("content", "", "Path to a content pack JSON file (default: built-in pack)")
	flags.String("mode", session.DefaultMode, "Stats namespace")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration with the persistent flags bound on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"db":        "db",
		"content":   "content",
		"mode":      "mode",
		"log.level": "log-level",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return config.Load(v, cfgFile)
}

// env is what every command needs: config, logger, store and content.
type env struct {
	cfg   *config.Config
	log   *logrus.Logger
	store *store.Store
	pack  *content.Pack

	logCloser io.Closer
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, closer, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	e := &env{cfg: cfg, log: log, logCloser: closer}

	dbPath, err := cfg.DBPath()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	e.store, err = store.Open(dbPath, store.WithLogger(logging.Component(log, "store")))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	if cfg.Content != "" {
		e.pack, err = content.LoadFile(cfg.Content)
	} else {
		e.pack, err = content.Default()
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}

	log.WithFields(logrus.Fields{
		"db":      dbPath,
		"modules": len(e.pack.Modules),
		"items":   len(e.pack.Items),
		"mode":    cfg.Mode,
	}).Info("environment ready")
	return e, nil
}

// controller builds a session controller and loads the learner's state.
// An empty pool is not an error here; the screens report it.
func (e *env) controller(ctx context.Context) (*session.Controller, error) {
	f := content.DefaultFilter()
	f.WeakestLimit = e.cfg.Session.WeakestLimit

	ctrl := session.New(e.pack.Items, e.store.ItemStats(), e.store.Progress(),
		session.WithMode(e.cfg.Mode),
		session.WithLogger(logging.Component(e.log, "session")),
		session.WithSelection(e.cfg.SelectionConfig()),
		session.WithFilter(f),
		session.WithSettings(e.store.Settings()),
	)
	if _, err := ctrl.Start(ctx); err != nil && !errors.Is(err, selection.ErrEmptyPool) {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return ctrl, nil
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logCloser != nil {
		e.logCloser.Close()
	}
}
