package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// The cache holds objects that are expensive to rebuild and read often,
// such as parsed transcripts that the shell and batch scoring load again
// and again.

type cache struct {
	sync.Mutex
	objects map[string]any
	// loads makes concurrent misses on one key share a single loadFunc call.
	// Loads of different keys run in parallel.
	loads singleflight.Group
}

type loadFunc func(key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache = newCache()

func newCache() *cache {
	return &cache{objects: make(map[string]any)}
}

func (c *cache) lookup(key string) (any, bool) {
	c.Lock()
	defer c.Unlock()
	obj, ok := c.objects[key]
	return obj, ok
}

func (c *cache) load(key string, loadFunc loadFunc) (any, error) {
	obj, err, shared := c.loads.Do(key, func() (any, error) {
		if obj, ok := c.lookup(key); ok {
			return obj, nil
		}
		log.Debug().Str("key", key).Msg("loading into cache")
		obj, err := loadFunc(key)
		if err != nil {
			return nil, err
		}
		c.Lock()
		c.objects[key] = obj
		c.Unlock()
		return obj, nil
	})
	if shared {
		log.Debug().Str("key", key).Msg("shared cache load")
	}
	return obj, err
}

func (c *cache) get(key string, loadFunc loadFunc) (any, error) {
	if obj, ok := c.lookup(key); ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	return c.load(key, loadFunc)
}

// CreateGlobalObjectCache replaces the global cache with an empty one.
func CreateGlobalObjectCache() {
	GlobalObjectCache = newCache()
}

// Load returns the object cached under key, calling loadFunc to build it
// the first time. Failed loads are not cached.
func Load(key string, loadFunc loadFunc) (any, error) {
	return GlobalObjectCache.get(key, loadFunc)
}

// Len returns the number of cached objects.
func Len() int {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	return len(GlobalObjectCache.objects)
}

// FileKey returns a key for the file at path that changes whenever the file
// is modified.
func FileKey(prefix, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%d:%d", prefix, abs, fi.ModTime().UnixNano(), fi.Size()), nil
}
