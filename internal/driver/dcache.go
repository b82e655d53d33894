package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tanquar/deno-lint/internal/lint"
)

// Current schema version - increment when CachedResult format changes
const cacheSchemaVersion uint16 = 1

// Digest keys the result cache: a SHA-256 over the input content and the
// active rule set.
type Digest [sha256.Size]byte

// cacheFingerprinter lets a rule mix extra state into the cache key. Plugin
// hosts need it: their code is the module path, which stays the same when
// the module's content, runner or code selection changes.
type cacheFingerprinter interface {
	CacheFingerprint() []byte
}

// cacheKey folds the input bytes and the rule codes into one digest, so a
// rule-set change invalidates naturally.
func cacheKey(content []byte, rules []lint.Rule) Digest {
	h := sha256.New()
	h.Write(content)
	for _, r := range rules {
		io.WriteString(h, "\x00")
		io.WriteString(h, r.Code())
		if fp, ok := r.(cacheFingerprinter); ok {
			h.Write(fp.CacheFingerprint())
		}
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// CachedResult stores one file's diagnostics for fast re-runs.
type CachedResult struct {
	// Schema version for safe invalidation when format changes
	Schema      uint16
	Diagnostics []lint.Diagnostic
}

// DiskCache хранит результаты прогонов по дайджесту входа на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "results".
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachedResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written by a different schema counts as a miss.
func (c *DiskCache) Get(key Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим уже под новым именем: промежуточное
	// состояние никогда не выглядит как валидный кеш
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
