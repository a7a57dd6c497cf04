package options

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/phoneshell/pkg/store"
)

// StoreOptions select where the phone state lives.
type StoreOptions struct {
	Path      string
	Backend   string
	Locale    string
	Ephemeral bool
	Verbose   bool
}

func AddStoreArgs(cmd *cobra.Command, so *StoreOptions) {
	cmd.PersistentFlags().StringVar(&so.Path, "path", "",
		"Directory holding the phone state. Overrides the config file.")
	cmd.PersistentFlags().StringVar(&so.Backend, "backend", "",
		"Storage backend: diskv, sqlite or memory. Overrides the config file.")
	cmd.PersistentFlags().StringVar(&so.Locale, "locale", "",
		"Display locale used until one is saved in settings.")
	cmd.PersistentFlags().BoolVar(&so.Ephemeral, "ephemeral", false,
		"Keep all state in memory for this run.")
	cmd.PersistentFlags().BoolVarP(&so.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")
}

// Config merges the flags over the config file and environment.
func (so *StoreOptions) Config() (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	path, backend, locale := cfg.BasePath(), cfg.Backend(), cfg.Locale()
	if so.Path != "" {
		path = so.Path
	}
	if so.Backend != "" {
		backend = so.Backend
	}
	if so.Ephemeral {
		backend = store.BackendMemory
	}
	if so.Locale != "" {
		locale = so.Locale
	}
	return store.NewConfig(path, backend, locale)
}

// Open loads the configured persistence.
func (so *StoreOptions) Open(log *slog.Logger) (store.Persistence, store.Config, error) {
	cfg, err := so.Config()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

// Logger returns the logger for one command. PHONESHELL_LOG names a file to
// log to, which is the only way to see logs from the full-screen UI.
func (so *StoreOptions) Logger(stderr io.Writer, interactive bool) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if so.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if path := strings.TrimSpace(os.Getenv("PHONESHELL_LOG")); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewJSONHandler(f, opts)), func() { _ = f.Close() }, nil
	}
	if interactive {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	return slog.New(slog.NewTextHandler(stderr, opts)), func() {}, nil
}
