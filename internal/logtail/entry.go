package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is one decoded zap JSON log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Caller  string
	Fields  []Field
	// Raw holds the original line when it was not JSON.
	Raw string
}

// Field is one structured key/value attached to an entry.
type Field struct {
	Key   string
	Value string
}

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "msg": true, "caller": true, "stacktrace": true, "logger": true,
}

// Parse decodes a zap production JSON line. Lines that are not JSON objects
// come back with only Raw set.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Raw: line}
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return Entry{Raw: line}
	}

	entry := Entry{
		Level:   strings.ToUpper(stringValue(payload["level"])),
		Message: stringValue(payload["msg"]),
		Caller:  stringValue(payload["caller"]),
	}
	if ts := stringValue(payload["ts"]); ts != "" {
		if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			entry.Time = parsed
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		if !reservedKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry.Fields = append(entry.Fields, Field{Key: key, Value: stringValue(payload[key])})
	}
	return entry
}

// Format renders an entry as a header line followed by indented field lines:
//
//	2025-10-08 21:01:05 WARN – catalog fetch failed
//	    - error: connection refused
func Format(e Entry) string {
	if e.Raw != "" {
		return e.Raw
	}
	parts := make([]string, 0, 3)
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := e.Level
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	header := strings.Join(parts, " ")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		header += " – " + msg
	}
	if len(e.Fields) == 0 {
		return header
	}
	var builder strings.Builder
	builder.WriteString(header)
	for _, f := range e.Fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		builder.WriteString("\n    - ")
		builder.WriteString(f.Key)
		builder.WriteString(": ")
		builder.WriteString(f.Value)
	}
	return builder.String()
}

func stringValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	}
}
