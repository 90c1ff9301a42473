package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line; zap lines with long stack traces can
// exceed the scanner default.
const maxLineBytes = 1 << 20

// Tail returns the last maxEntries entries of the log file at path, oldest
// first. Blank lines are not entries. A missing file yields no entries.
func Tail(path string, maxEntries int) ([]Entry, error) {
	if maxEntries <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	window := newLineWindow(maxEntries)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(nil, maxLineBytes)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		window.push(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	// Only the retained lines are decoded.
	lines := window.lines()
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Parse(line)
	}
	return entries, nil
}

// lineWindow keeps the most recent lines pushed into it.
type lineWindow struct {
	buf  []string
	next int
	full bool
}

func newLineWindow(size int) *lineWindow {
	return &lineWindow{buf: make([]string, size)}
}

func (w *lineWindow) push(line string) {
	w.buf[w.next] = line
	w.next++
	if w.next == len(w.buf) {
		w.next = 0
		w.full = true
	}
}

func (w *lineWindow) lines() []string {
	if !w.full {
		return append([]string(nil), w.buf[:w.next]...)
	}
	out := make([]string, 0, len(w.buf))
	out = append(out, w.buf[w.next:]...)
	return append(out, w.buf[:w.next]...)
}
