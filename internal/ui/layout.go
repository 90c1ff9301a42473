package ui

import "time"

// LayoutCompactWidth is the terminal width below which compact mode is used.
const LayoutCompactWidth = 100

// LogBufferLimit is the maximum number of log entries read from the tail.
const LogBufferLimit = 2000

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = time.Second
