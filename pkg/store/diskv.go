package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// Keys used by the phone shell.
const (
	KeyAppOrder      = "phone_app_order"
	KeyDockOrder     = "phone_dock_order"
	KeyWidgets       = "phone_widgets"
	KeySettings      = "phone_settings"
	KeyConversations = "feed_conversations"
	KeyCalls         = "feed_calls"
)

// KnownKeys lists every key the shell reads or writes, in display order.
func KnownKeys() []string {
	return []string{KeyAppOrder, KeyDockOrder, KeyWidgets, KeySettings, KeyConversations, KeyCalls}
}

var (
	ErrInvalidKey        = errors.New("store: invalid key")
	ErrUnknownBackend    = errors.New("store: unknown backend")
	ErrWatchUnsupported  = errors.New("store: backend does not support watch")
	ErrBasePathUndefined = errors.New("store: base path unknown")
)

// Persistence is a flat string key/value store. Load never fails: a missing
// or unreadable key reports false and the failure is logged.
type Persistence interface {
	Load(key string) (string, bool)
	Save(key, value string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func validKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Load opens the backend selected by cfg.
func Load(cfg Config, log *slog.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	switch cfg.Backend() {
	case BackendDiskv, "":
		return openDiskv(cfg.BasePath(), log)
	case BackendSQLite:
		return openSQLite(context.Background(), cfg.BasePath(), log)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend())
	}
}

func openDiskv(basePath string, log *slog.Logger) (*persistence, error) {
	if basePath == "" {
		return nil, ErrBasePathUndefined
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		// Other processes write the same files; a read cache would hide
		// their changes from Watch consumers.
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log.With("backend", BackendDiskv),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func (p *persistence) Load(key string) (string, bool) {
	if !validKey(key) {
		p.log.Warn("load rejected", "key", key, "err", ErrInvalidKey)
		return "", false
	}
	if !p.d.Has(key) {
		return "", false
	}
	val, err := p.d.Read(key)
	if err != nil {
		p.log.Warn("load failed", "key", key, "err", err)
		return "", false
	}
	return string(val), true
}

func (p *persistence) Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if validKey(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (p *persistence) Close() error {
	return nil
}
