package redisx

import "time"

const (
	// Catalog listing cache: catalog:products -> JSON array
	KeyCatalogList = "catalog:products"

	// Statistics caches: stats:{report} -> JSON array
	KeyStatsUsers    = "stats:users"
	KeyStatsProducts = "stats:products"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCatalog = 30 * time.Second
	TTLStats   = 1 * time.Minute
	TTLDedup   = 48 * time.Hour
)
