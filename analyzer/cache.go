package analyzer

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/parser"
)

// DefaultCacheSize is the number of analyzed files a Cache keeps.
const DefaultCacheSize = 1024

type cacheKey struct {
	sum    uint64
	module string
}

type cacheEntry struct {
	file  *ast.File
	diags []parser.Diagnostic
}

// Cache remembers analysis results by source content and module path, so
// unchanged files are not parsed again across runs sharing the cache.
// Stored and returned files are deep copies; later passes can rewrite the
// returned model freely. A Cache is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, cacheEntry]
	hits    atomic.Int64
}

// NewCache returns a cache holding at most size files.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns a copy of the cached analysis of src at module mod. The copy
// carries name as its source path.
func (c *Cache) Get(name string, src []byte, mod ast.Path) (*ast.File, []parser.Diagnostic, bool) {
	e, ok := c.entries.Get(keyOf(src, mod))
	if !ok {
		return nil, nil, false
	}
	c.hits.Add(1)
	f := e.file.Clone()
	f.Path = name
	return f, e.diags, true
}

// Add stores a copy of f.
func (c *Cache) Add(src []byte, mod ast.Path, f *ast.File, diags []parser.Diagnostic) {
	c.entries.Add(keyOf(src, mod), cacheEntry{file: f.Clone(), diags: diags})
}

// Len returns the number of cached files.
func (c *Cache) Len() int { return c.entries.Len() }

// Hits returns how many lookups were answered from the cache.
func (c *Cache) Hits() int64 { return c.hits.Load() }

func keyOf(src []byte, mod ast.Path) cacheKey {
	return cacheKey{sum: xxh3.Hash(src), module: mod.String()}
}
