// Package util contains small, side-effect-free helpers shared across the
// application.
package util

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppInfo describes the running application.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// GetAppInfo returns the static application descriptor served at the root endpoint.
func GetAppInfo() AppInfo {
	return AppInfo{
		Name:        "demoapp",
		Version:     "0.1.0",
		Description: "A demonstration web backend used as a code-review test fixture",
	}
}

// FormatTimestamp formats a Unix timestamp (seconds) as an RFC 3339 UTC string.
func FormatTimestamp(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(time.RFC3339)
}

// ParseTimestamp parses an ISO-8601/RFC 3339 string into a Unix timestamp in
// seconds. A trailing "Z" and numeric offsets are both accepted.
func ParseTimestamp(isoString string) (int64, error) {
	parsed, err := time.Parse(time.RFC3339, isoString)
	if err != nil {
		return 0, err
	}

	return parsed.Unix(), nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify converts text to a URL-friendly slug: lowercased, whitespace runs
// collapsed to single hyphens, everything else non-alphanumeric stripped,
// repeated hyphens collapsed, and leading/trailing hyphens trimmed.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// TruncateString shortens text so the result never exceeds maxLength,
// appending the suffix when truncation happens.
func TruncateString(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= len(suffix) {
		return suffix[:maxLength]
	}

	return text[:maxLength-len(suffix)] + suffix
}

// SafeJSONParse parses a JSON string, returning the supplied default on any
// decoding failure instead of an error.
func SafeJSONParse(jsonString string, defaultValue any) any {
	var parsed any
	if err := json.Unmarshal([]byte(jsonString), &parsed); err != nil {
		return defaultValue
	}

	return parsed
}

// SafeJSONSerialize serializes data to a JSON string, returning the supplied
// default on any encoding failure instead of an error.
func SafeJSONSerialize(data any, defaultValue string) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return defaultValue
	}

	return string(encoded)
}

// DeepMerge merges override into base recursively. When both sides hold a
// map under the same key the maps are merged; otherwise the override wins.
// Neither input is mutated.
func DeepMerge(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		baseMap, baseOK := result[key].(map[string]any)
		overrideMap, overrideOK := value.(map[string]any)
		if baseOK && overrideOK {
			result[key] = DeepMerge(baseMap, overrideMap)

			continue
		}
		result[key] = value
	}

	return result
}

// Chunk splits items into contiguous groups of chunkSize; the final group may
// be shorter. A non-positive chunkSize yields nil.
func Chunk[T any](items []T, chunkSize int) [][]T {
	if chunkSize <= 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+chunkSize-1)/chunkSize)
	for start := 0; start < len(items); start += chunkSize {
		end := min(start+chunkSize, len(items))
		chunks = append(chunks, items[start:end])
	}

	return chunks
}

// FlattenMap flattens a nested map into a single level, joining key segments
// with the separator.
func FlattenMap(data map[string]any, separator string) map[string]any {
	flattened := make(map[string]any)
	flattenInto(flattened, data, "", separator)

	return flattened
}

func flattenInto(dst map[string]any, data map[string]any, parentKey, separator string) {
	for key, value := range data {
		newKey := key
		if parentKey != "" {
			newKey = parentKey + separator + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, nested, newKey, separator)

			continue
		}
		dst[newKey] = value
	}
}

// MaskSensitive replaces all but the last visibleChars characters with
// asterisks. Strings no longer than visibleChars are masked entirely.
func MaskSensitive(data string, visibleChars int) string {
	if len(data) <= visibleChars {
		return strings.Repeat("*", len(data))
	}

	return strings.Repeat("*", len(data)-visibleChars) + data[len(data)-visibleChars:]
}

// NewCorrelationID returns a fresh random identifier for request tracing.
func NewCorrelationID() string {
	return uuid.NewString()
}
