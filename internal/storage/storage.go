package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the keyed-blob persistence port the storefront state lives
// behind. Values are opaque JSON documents; there are no transactions
// across keys and concurrent writers are last-writer-wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Well-known key names. Stock is global; cart items are scoped per session
// via SessionKey.
const (
	KeyCartItems  = "cartItems"
	KeyStockItems = "stockItems"
)

const sessionPrefix = "session:"

func SessionKey(sessionID, name string) string {
	return sessionPrefix + sessionID + ":" + name
}

// SessionPrefix is the key prefix shared by all session-scoped entries,
// used by the janitor sweep.
func SessionPrefix() string {
	return sessionPrefix
}
