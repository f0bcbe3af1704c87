// Package logutil holds the loggers shared by the rest of the module.
package logutil

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// Open appends log lines to the file at path, creating it and its directory
// if needed. An empty path yields Discard and a no-op closer.
func Open(path string) (*log.Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Discard, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "todos: ", log.LstdFlags|log.Lmicroseconds), f, nil
}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard
	}
	return l
}
