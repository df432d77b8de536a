package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// DocMeta captures what the origin declared about a downloaded document so
// cache hits can reconstruct the fetch result without the network.
type DocMeta struct {
	ContentType  string    `json:"content_type"`
	DeclaredName string    `json:"declared_name"`
	SavedAt      time.Time `json:"saved_at"`
}

// DocCache stores downloaded documents on disk as <key>.meta.json and
// <key>.body where key is sha256(url). Simple and deterministic; no
// eviction policy is included.
type DocCache struct {
	Dir string
}

func (c *DocCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(c.Dir, 0o755)
}

func (c *DocCache) key(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

func (c *DocCache) metaPath(key string) string { return filepath.Join(c.Dir, key+".meta.json") }
func (c *DocCache) bodyPath(key string) string { return filepath.Join(c.Dir, key+".body") }

// Load returns the cached document and its metadata, or an error when the
// entry is absent or unreadable.
func (c *DocCache) Load(_ context.Context, url string) ([]byte, DocMeta, error) {
	if err := c.ensureDir(); err != nil {
		return nil, DocMeta{}, err
	}
	key := c.key(url)
	raw, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, DocMeta{}, err
	}
	var meta DocMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, DocMeta{}, err
	}
	body, err := os.ReadFile(c.bodyPath(key))
	if err != nil {
		return nil, DocMeta{}, err
	}
	return body, meta, nil
}

// Save stores a new cache entry to disk.
func (c *DocCache) Save(_ context.Context, url string, meta DocMeta, body []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	if meta.SavedAt.IsZero() {
		meta.SavedAt = time.Now().UTC()
	}
	key := c.key(url)
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.bodyPath(key), body, 0o644); err != nil {
		return err
	}
	return os.WriteFile(c.metaPath(key), raw, 0o644)
}
