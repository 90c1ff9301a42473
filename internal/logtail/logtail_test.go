package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func messages(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestTail(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		msg := fmt.Sprintf("event %d", i)
		fmt.Fprintf(&content, `{"level":"info","msg":%q}`+"\n", msg)
		all = append(all, msg)
	}
	logPath := writeLog(t, content.String())

	tests := []struct {
		name       string
		maxEntries int
		expected   []string
	}{
		{name: "zero entries", maxEntries: 0, expected: nil},
		{name: "partial (5)", maxEntries: 5, expected: all[5:]},
		{name: "exactly all (10)", maxEntries: 10, expected: all},
		{name: "more than exists (20)", maxEntries: 20, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(logPath, tt.maxEntries)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if !reflect.DeepEqual(messages(got), tt.expected) {
				t.Errorf("Tail() = %v, want %v", messages(got), tt.expected)
			}
		})
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	logPath := writeLog(t, "{\"level\":\"warn\",\"msg\":\"first\"}\n\n   \n{\"level\":\"error\",\"msg\":\"second\"}\n\n")

	got, err := Tail(logPath, 2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(messages(got), want) {
		t.Fatalf("Tail() = %v, want %v", messages(got), want)
	}
	if got[0].Level != "WARN" || got[1].Level != "ERROR" {
		t.Fatalf("levels = %q, %q; want WARN, ERROR", got[0].Level, got[1].Level)
	}
}

func TestTail_KeepsPlainLines(t *testing.T) {
	got, err := Tail(writeLog(t, "panic: boom\n"), 5)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 1 || got[0].Raw != "panic: boom" {
		t.Fatalf("Tail() = %+v, want one raw entry", got)
	}
}

func TestTail_MissingFile(t *testing.T) {
	entries, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || entries != nil {
		t.Fatalf("Tail(missing) = %v, %v; want nil, nil", entries, err)
	}
}

func TestParse_ZapJSON(t *testing.T) {
	line := `{"level":"warn","ts":"2025-10-08T21:01:05.000Z","caller":"saved/reconcile.go:48","msg":"saved country not in catalog","country_name":"Nowhereland","count":3}`
	e := Parse(line)

	if e.Level != "WARN" || e.Message != "saved country not in catalog" {
		t.Fatalf("Parse = %+v", e)
	}
	want := time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	wantFields := []Field{{Key: "count", Value: "3"}, {Key: "country_name", Value: "Nowhereland"}}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Fatalf("Fields = %+v, want %+v", e.Fields, wantFields)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    Entry
		expected string
	}{
		{
			name:     "raw passthrough",
			input:    Entry{Raw: "plain text line"},
			expected: "plain text line",
		},
		{
			name:     "level defaults to info",
			input:    Entry{Message: "catalog loaded"},
			expected: "INFO – catalog loaded",
		},
		{
			name:     "fields as detail lines",
			input:    Entry{Level: "WARN", Message: "save country failed", Fields: []Field{{Key: "country_name", Value: "Canada"}, {Key: "empty", Value: ""}}},
			expected: "WARN – save country failed\n    - country_name: Canada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}
