package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// TokenKey is the storage entry holding the bearer token.
const TokenKey = "token"

var ErrStorageUnavailable = errors.New("credential storage unavailable")

var _ Store = (*MemoryStore)(nil)
var _ Store = (*SQLiteStore)(nil)
var _ Store = (*RedisStore)(nil)
var _ Store = DisabledStore{}

// Store holds a single bearer token, scoped to one server origin.
// Get reports absent on any backend failure, which callers treat as "not logged in".
type Store interface {
	Get(ctx context.Context) (token string, ok bool)
	Set(ctx context.Context, token string) error
}

// Clearer is implemented by stores that can forget the token (logout).
type Clearer interface {
	Clear(ctx context.Context) error
}

// Origin returns the scheme://host[:port] part of a base URL, used to scope stored entries.
func Origin(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q: missing scheme or host", baseURL)
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), nil
}

// DisabledStore behaves like browser storage turned off: nothing is ever stored.
type DisabledStore struct{}

func (DisabledStore) Get(context.Context) (string, bool) {
	return "", false
}

func (DisabledStore) Set(context.Context, string) error {
	return ErrStorageUnavailable
}

func (DisabledStore) Clear(context.Context) error {
	return nil
}
