package db

// Schema for the key/value store holding JSON-encoded collections
const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Storage keys, kept identical to the original browser storage keys
const (
	KeyFavorites = "movieFavorites"
	KeyHistory   = "searchHistory"
)

const selectValue = `
SELECT value FROM kv_store WHERE key = ?
`

const upsertValue = `
INSERT OR REPLACE INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
`

const selectKeys = `
SELECT key, updated_at FROM kv_store
ORDER BY key ASC
`
