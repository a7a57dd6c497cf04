package layout

import (
	"encoding/json"
	"log/slog"
)

// KV is the slice of store.Persistence the engine needs.
type KV interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// persister writes after every committed mutation. Failures are logged and
// never reach the caller.
type persister struct {
	kv  KV
	log *slog.Logger
}

func (p *persister) saveIDs(key string, ids []string) {
	if p == nil || p.kv == nil {
		return
	}
	data, err := json.Marshal(append([]string{}, ids...))
	if err != nil {
		p.log.Warn("encode failed", "key", key, "err", err)
		return
	}
	if err := p.kv.Save(key, string(data)); err != nil {
		p.log.Warn("persist failed", "key", key, "err", err)
	}
}

// loadIDs decodes a JSON id list. Absent and malformed values both report
// false; malformed ones are logged.
func (p *persister) loadIDs(key string) ([]string, bool) {
	if p == nil || p.kv == nil {
		return nil, false
	}
	raw, ok := p.kv.Load(key)
	if !ok {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		p.log.Warn("malformed value, using defaults", "key", key, "err", err)
		return nil, false
	}
	return ids, true
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []string, i int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

// insertBefore places id before target, or at the end when target is absent.
func insertBefore(ids []string, id, target string) []string {
	at := indexOf(ids, target)
	if target == "" || at < 0 {
		return append(append([]string{}, ids...), id)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:at]...)
	out = append(out, id)
	return append(out, ids[at:]...)
}

// dedupe keeps the first occurrence of every id accepted by keep.
func dedupe(ids []string, keep func(string) bool) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || !keep(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
