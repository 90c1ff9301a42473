// Package logtail reads and formats the tail of the atlas log file.
//
// # Reading Log Files
//
// Tail keeps a window of the last maxEntries non-blank lines while scanning
// the file once, then decodes only those lines:
//
//	entries, err := logtail.Tail(cfg.LogFile, 400)
//
// A missing file is not an error; Tail returns nil, nil.
//
// # Formatting
//
// atlas logs zap production JSON. Parse decodes one line into an Entry and
// Format renders it for the log view:
//
//	2025-10-08 21:01:05 WARN – saved country not in catalog
//	    - country_name: Nowhereland
//
// Fields are listed in key order. Lines that are not JSON pass through
// unchanged, so a log written by another tool still displays.
package logtail
