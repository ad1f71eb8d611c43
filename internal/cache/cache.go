// Package cache keeps rendered guest listings so repeated page loads skip the
// store. Every admin write invalidates the whole listing namespace.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	Prefix     = "listing:"
	DefaultTtl = 10 * time.Minute
)

type Cache interface {
	// Get reports found=false on a miss; err is reserved for backend failures.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// InvalidateAll drops every listing entry.
	InvalidateAll(ctx context.Context) (deleted int, err error)
}

// Key builds a stable key for a listing namespace and its query parameters.
// Parameter order does not matter.
func Key(namespace string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		values := append([]string(nil), params[k]...)
		sort.Strings(values)
		for _, v := range values {
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(strings.TrimSpace(v))
			sb.WriteByte('&')
		}
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return Prefix + namespace + ":" + hex.EncodeToString(sum[:])
}

// Nop never stores anything. Used when no Redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Nop) InvalidateAll(context.Context) (int, error) {
	return 0, nil
}
