package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FormatICS = "ics"
	FormatXML = "xml"

	exportKeyPattern = "export:*"
	defaultTTL       = 5 * time.Minute
)

// ExportCacheManager caches rendered ICS/XML export payloads so repeated
// feed subscriptions do not re-render the whole event set. Entries carry
// a short TTL and every reconciliation pass that wrote at least one row
// invalidates them.
type ExportCacheManager interface {
	GetRendered(ctx context.Context, format string, year int) (string, bool, error)
	StoreRendered(ctx context.Context, format string, year int, payload string) error
	Invalidate(ctx context.Context) error
}

type ExportCacheManagerImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewExportCacheManager(client *redis.Client) ExportCacheManager {
	return &ExportCacheManagerImpl{
		client: client,
		ttl:    defaultTTL,
	}
}

func (m *ExportCacheManagerImpl) key(format string, year int) string {
	return fmt.Sprintf("export:%s:%d", format, year)
}

func (m *ExportCacheManagerImpl) GetRendered(ctx context.Context, format string, year int) (string, bool, error) {
	payload, err := m.client.Get(ctx, m.key(format, year)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (m *ExportCacheManagerImpl) StoreRendered(ctx context.Context, format string, year int, payload string) error {
	return m.client.Set(ctx, m.key(format, year), payload, m.ttl).Err()
}

// Invalidate drops every cached export. The keyspace holds at most a
// handful of entries, so a KEYS scan is fine here.
func (m *ExportCacheManagerImpl) Invalidate(ctx context.Context) error {
	keys, err := m.client.Keys(ctx, exportKeyPattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}
