// Package store provides the planner's durable key-value boundary.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Namespace is the key prefix that isolates the planner's records from
// anything else sharing the same store path.
const Namespace = "tempo"

// Persistence is the engine's only durable boundary: a mapping from short
// string keys to JSON-serializable blobs, with single-key atomicity and no
// cross-key transactions.
type Persistence interface {
	// Get unmarshals the value under key into out. The boolean is false
	// when the key is absent.
	Get(key string, out interface{}) (bool, error)
	Set(key string, v interface{}) error
	Remove(key string) error
	Keys(ctx context.Context) []string

	// Export produces the full state as one object keyed by short names.
	Export(ctx context.Context) (map[string]json.RawMessage, error)

	// Import overwrites the keys present in data, leaving others untouched.
	Import(data map[string]json.RawMessage) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Get(key string, out interface{}) (bool, error) {
	data, err := p.d.Read(toKey(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (p *persistence) Set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(toKey(key), data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Remove(key string) error {
	if err := p.d.Erase(toKey(key)); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		if short, ok := fromKey(key); ok {
			keys = append(keys, short)
		}
	}
	sort.Strings(keys)
	return keys
}

func (p *persistence) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	for _, short := range p.Keys(ctx) {
		data, err := p.d.Read(toKey(short))
		if err != nil {
			return nil, fmt.Errorf("store: read %s: %w", short, err)
		}
		out[short] = json.RawMessage(data)
	}
	return out, nil
}

func (p *persistence) Import(data map[string]json.RawMessage) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !json.Valid(data[key]) {
			return fmt.Errorf("store: import %s: invalid JSON", key)
		}
		if err := p.d.Write(toKey(key), data[key]); err != nil {
			return fmt.Errorf("store: import %s: %w", key, err)
		}
	}
	return nil
}

// keyToPathTransform maps `tempo-name` to the namespace directory plus the
// short file name.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(short string) string {
	return fmt.Sprintf("%s-%s", Namespace, short)
}

func fromKey(key string) (string, bool) {
	prefix := Namespace + "-"
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return strings.TrimPrefix(key, prefix), true
}
