package store

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// The specs and features columns hold JSON text. Rows written by older
// builds or edited by hand may not parse; those decode to empty values.

func encodeSpecs(specs map[string]string) string {
	if len(specs) == 0 {
		return "{}"
	}
	b, err := json.Marshal(specs)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func encodeFeatures(features []string) string {
	if len(features) == 0 {
		return "[]"
	}
	b, err := json.Marshal(features)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeSpecs(raw string, logger *slog.Logger, id string) map[string]string {
	specs := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return specs
	}
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		logger.Warn("malformed specs column", "id", id, "error", err)
		return map[string]string{}
	}
	if specs == nil {
		specs = map[string]string{}
	}
	return specs
}

func decodeFeatures(raw string, logger *slog.Logger, id string) []string {
	features := []string{}
	if strings.TrimSpace(raw) == "" {
		return features
	}
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		logger.Warn("malformed features column", "id", id, "error", err)
		return []string{}
	}
	if features == nil {
		features = []string{}
	}
	return features
}
