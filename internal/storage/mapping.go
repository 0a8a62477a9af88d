package storage

// outcomeMapping is the index mapping for outcome documents.
var outcomeMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"run_id":          map[string]any{"type": "keyword"},
			"position":        map[string]any{"type": "integer"},
			"origin":          map[string]any{"type": "keyword"},
			"title":           map[string]any{"type": "text", "fields": map[string]any{"keyword": map[string]any{"type": "keyword"}}},
			"sql":             map[string]any{"type": "text"},
			"ok":              map[string]any{"type": "boolean"},
			"error":           map[string]any{"type": "text"},
			"cold_latency_ms": map[string]any{"type": "double"},
			"hot_latency_ms":  map[string]any{"type": "double"},
			"bucket":          map[string]any{"type": "keyword"},
			"timestamp":       map[string]any{"type": "date"},
		},
	},
}
