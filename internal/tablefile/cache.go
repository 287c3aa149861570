package tablefile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"racc/internal/tables"
	"racc/internal/version"
)

// Key identifies cached tables: a digest of the model bytes, the encoding,
// the schema version and the racc version that built them.
type Key [sha256.Size]byte

// KeyFor computes the cache key of a model file's content.
func KeyFor(model []byte, enc tables.Encoding) Key {
	h := sha256.New()
	h.Write([]byte("racc-tables/" + strconv.Itoa(int(SchemaVersion)) + "/" + version.Version + "/" + string(enc) + "\x00"))
	h.Write(model)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Cache хранит собранные таблицы по Key на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt opens a cache rooted at dir.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "tables", key.String()+".mp")
}

// Put stores res under key.
func (c *Cache) Put(key Key, res *tables.Result) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteFile(c.pathFor(key), res)
}

// Get loads the tables stored under key. A missing entry is not an error;
// an entry of another schema version or one that fails to decode counts as
// missing and is overwritten by the next Put.
func (c *Cache) Get(key Key) (*tables.Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, err := ReadFile(c.pathFor(key))
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, ErrSchema), errors.Is(err, ErrCorrupt):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return res, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
