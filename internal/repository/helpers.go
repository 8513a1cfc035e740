package repository

import (
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError reports whether the error is a unique index
// violation. SurrealDB surfaces these as plain message strings, so the
// check is textual.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}

// extractQueryResults pulls the record array out of a statement result.
// Accepts both the wrapped {status, result} shape produced by
// database.Query and a bare record array.
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	results, ok := result.([]interface{})
	if !ok || len(results) == 0 {
		return nil, false
	}
	if wrapped, ok := results[0].(map[string]interface{}); ok {
		if records, ok := wrapped["result"].([]interface{}); ok {
			return records, true
		}
	}
	return results, true
}

// extractCount reads the count field from a `SELECT count() ... GROUP ALL`
// result, unwrapping the statement wrapper if present
func extractCount(result interface{}) int {
	resp, ok := result.(map[string]interface{})
	if !ok {
		return 0
	}
	if status, ok := resp["status"].(string); ok && status == "OK" {
		if records, ok := resp["result"].([]interface{}); ok && len(records) > 0 {
			if data, ok := records[0].(map[string]interface{}); ok {
				return toInt(data["count"])
			}
		}
	}
	return toInt(resp["count"])
}

// toInt converts the numeric types the CBOR decoder may hand back
func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case float32:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

// getString reads a string field from a decoded record
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr reads an optional string field; empty reads as absent
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// getTime reads a timestamp field. The driver may decode datetimes as
// RFC 3339 strings, time.Time, or its own CustomDateTime wrapper.
func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}
