package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/ellery/starcalc/internal/util"
)

const (
	logPath    = "log.txt"
	logLimit   = 10 * 1024 * 1024
	logBackups = 2
)

// NullWriter discards everything
type NullWriter struct{}

func (NullWriter) Write(data []byte) (int, error) {
	return len(data), nil
}

// RotatingWriter is an append-only log capped at limit bytes. When a write
// would go over, log.txt becomes log.txt.1, log.txt.1 becomes log.txt.2 and
// so on, keeping at most backups old files.
type RotatingWriter struct {
	mu      sync.Mutex
	path    string
	limit   int64
	backups int

	f       *os.File
	written int64
}

// NewRotatingWriter opens path for appending
func NewRotatingWriter(path string, limit int64, backups int) (*RotatingWriter, error) {
	w := &RotatingWriter{path: path, limit: limit, backups: backups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, util.FileMode)
	if err != nil {
		return err
	}
	w.f = f
	w.written = 0
	if info, err := f.Stat(); err == nil {
		w.written = info.Size()
	}
	return nil
}

func (w *RotatingWriter) backup(n int) string {
	return fmt.Sprintf("%s.%d", w.path, n)
}

// shift closes the log and moves every file one slot down the backup chain
func (w *RotatingWriter) shift() error {
	w.f.Close()

	if w.backups < 1 {
		os.Remove(w.path)
		return w.open()
	}
	os.Remove(w.backup(w.backups))
	for n := w.backups - 1; n >= 1; n-- {
		os.Rename(w.backup(n), w.backup(n+1))
	}
	os.Rename(w.path, w.backup(1))
	return w.open()
}

func (w *RotatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written > 0 && w.written+int64(len(data)) > w.limit {
		if err := w.shift(); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(data)
	w.written += int64(n)
	return n, err
}

func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

// logOutput picks where the log goes for a Debug setting
func logOutput(debug string) (io.Writer, error) {
	if debug != "ON" {
		return NullWriter{}, nil
	}
	return NewRotatingWriter(logPath, logLimit, logBackups)
}

// InitLog points the standard logger at ./log.txt with -debug
func InitLog() {
	out, err := logOutput(util.Debug)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	log.SetOutput(out)
	if util.Debug == "ON" {
		log.Printf("STARCALC: logging to %s, %s per file", logPath, humanize.IBytes(logLimit))
	}
}
