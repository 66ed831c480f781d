package credentials

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const memoryCacheSize = 512 * 1024 // freecache minimum

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	origin string
	cache  *freecache.Cache
}

func NewMemoryStore(origin string) *MemoryStore {
	return &MemoryStore{
		origin: origin,
		cache:  freecache.NewCache(memoryCacheSize),
	}
}

func (s *MemoryStore) key() []byte {
	return []byte(s.origin + "||" + TokenKey)
}

func (s *MemoryStore) Get(_ context.Context) (string, bool) {
	val, err := s.cache.Get(s.key())
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("memory store, get token: %s", err)
		}
		return "", false
	}
	return string(val), true
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	// expire 0 -> never expires
	return s.cache.Set(s.key(), []byte(token), 0)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.cache.Del(s.key())
	return nil
}
