package cmd

import (
	"fmt"
	"os"

	"github.com/senseilabs/sensei/internal/app"
	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/llm"
	"github.com/senseilabs/sensei/internal/prefs"
	"github.com/senseilabs/sensei/internal/store"
	"github.com/spf13/cobra"
)

// defaultUserID scopes saved sessions. Sensei is single-user per machine.
const defaultUserID = "local"

// runApp opens the store and preference file, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve preferences path: %w", err)
	}
	pf := prefs.Open(prefsPath)

	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "No LLM provider configured:", err)
		fmt.Fprintln(os.Stderr, "Set SENSEI_LLM_PROVIDER plus the matching API key, or export GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY / OPENROUTER_API_KEY.")
		return err
	}

	provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	ctrl := learn.NewController(prefs.LoadSnapshot(pf), prefs.Persister{Store: pf})

	return app.Run(app.Options{
		Controller: ctrl,
		Gateway:    generate.New(provider, generate.DefaultConfig()),
		Sessions:   st.SessionRepo(),
		Prefs:      pf,
		UserID:     defaultUserID,
	})
}
