package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kartu/internal/app"
	"github.com/abhisek/kartu/internal/chat"
	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/logging"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds the session and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := e.controller(ctx)
	if err != nil {
		return err
	}

	opts := app.Options{
		Controller: ctrl,
		Pack:       e.pack,
		Log:        logging.Component(e.log, "app"),
	}

	// Chat is optional; practice works without a provider.
	llmCfg := e.cfg.LLMConfig()
	provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), logging.Component(e.log, "llm"))
	if err != nil {
		e.log.WithError(err).Warn("LLM provider not configured, chat disabled")
	} else {
		opts.Tutor = chat.New(provider,
			chat.WithLogger(logging.Component(e.log, "chat")),
			chat.WithMaxTokens(llmCfg.MaxTokens),
			chat.WithTimeout(llmCfg.Timeout),
			chat.WithSessionID(ctrl.ID()),
		)
	}

	if err := app.Run(opts); err != nil {
		return err
	}

	sum := ctrl.Summary()
	e.log.WithField("session", sum.SessionID).
		WithField("cards", sum.Stats.Total()).
		WithField("duration", sum.Duration.String()).
		Info("session ended")
	return nil
}
