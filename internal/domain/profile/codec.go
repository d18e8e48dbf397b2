package profile

import (
	"encoding/json"
	"strings"
)

// DecodeStringList deserializes a list-valued attribute stored as a
// JSON array. Absent or corrupt input yields an empty list, never an
// error; callers rely on that leniency because attribute values are
// written by multiple generations of clients.
func DecodeStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}

	clean := make([]string, 0, len(out))
	for _, s := range out {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	return clean
}

// EncodeStringList is the write-side counterpart of DecodeStringList.
func EncodeStringList(values []string) string {
	clean := make([]string, 0, len(values))
	for _, s := range values {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return "[]"
	}
	return string(b)
}
