package verify

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

const cacheFileName = "stepcheck_cache.gob"

// DefaultCacheMaxAge bounds how long cached findings are reused.
const DefaultCacheMaxAge = 24 * time.Hour

type CacheEntry struct {
	// Hash covers the step file content and the active rule list.
	Hash      string
	Findings  []tt.Finding
	CreatedAt time.Time
}

// Cache keeps the findings of step files between runs, in a gob file under
// CacheDir. An entry is reused only while the file content, the rule list
// and the age all still match.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   DefaultCacheMaxAge,
	}
	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

// Save writes the entries to disk.
func (c *Cache) Save() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

func (c *Cache) Set(filename, hash string, findings []tt.Finding) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:      hash,
		Findings:  findings,
		CreatedAt: time.Now(),
	}
}

func (c *Cache) Get(filename, hash string) ([]tt.Finding, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}
	if entry.Hash != hash || time.Since(entry.CreatedAt) > c.maxAge {
		delete(c.entries, filename)
		return nil, false
	}
	return entry.Findings, true
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
}

// CachedVerifier serves Run from a Cache and fills it on misses.
type CachedVerifier struct {
	engine *Engine
	cache  *Cache
}

func NewCachedVerifier(engine *Engine, cache *Cache) *CachedVerifier {
	return &CachedVerifier{engine: engine, cache: cache}
}

func (v *CachedVerifier) Run(filePath string) ([]tt.Finding, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filePath, err)
	}

	hash := v.hash(source)
	if findings, ok := v.cache.Get(filePath, hash); ok {
		return findings, nil
	}

	findings, err := v.engine.Run(filePath)
	if err != nil {
		return nil, err
	}
	v.cache.Set(filePath, hash, findings)
	return findings, nil
}

func (v *CachedVerifier) RunSource(source []byte) ([]tt.Finding, error) {
	return v.engine.RunSource(source)
}

func (v *CachedVerifier) IgnoreRule(rule string) {
	v.engine.IgnoreRule(rule)
}

func (v *CachedVerifier) hash(source []byte) string {
	h := md5.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(v.engine.Fingerprint()))
	return fmt.Sprintf("%x", h.Sum(nil))
}
