package redisx

import "time"

const (
	// Server-side session payload: session:{id} -> gob-encoded values
	KeySession = "session:%s"

	// Cached public list bodies: cache:doctors, cache:categories
	KeyDoctorsCache    = "cache:doctors"
	KeyCategoriesCache = "cache:categories"
)

var TTLListCache = 5 * time.Minute
