package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingWriter is a log file writer that rotates on size and
// periodically verifies the open descriptor still points at its path,
// recovering when the file is moved or deleted externally.
type RotatingWriter struct {
	mu      sync.Mutex
	f       *os.File
	path    string
	maxSize int64
	size    int64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRotatingWriter opens path for appending, rotating immediately if
// the existing file already exceeds maxSize, and starts a background
// identity check every verifyInterval.
func NewRotatingWriter(path string, maxSize int64, verifyInterval time.Duration) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:    path,
		maxSize: maxSize,
		stopCh:  make(chan struct{}),
	}

	if err := w.openLocked(); err != nil {
		return nil, err
	}
	if w.size >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.verifyLoop(verifyInterval)

	return w, nil
}

// Write implements io.Writer.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}

	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

// Close stops the verifier and closes the file.
func (w *RotatingWriter) Close() error {
	close(w.stopCh)
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	return w.f.Close()
}

func (w *RotatingWriter) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	w.f = f
	w.size = fi.Size()
	return nil
}

// rotateLocked archives the current file as <path>.YYYYMMDD-HHMMSS and
// starts a fresh one.
func (w *RotatingWriter) rotateLocked() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}

	archive := fmt.Sprintf("%s.%s", w.path, time.Now().Format("20060102-150405"))
	// Best effort; the file may have been removed underneath us.
	_ = os.Rename(w.path, archive)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating new log file: %w", err)
	}
	w.f = f
	w.size = 0
	return nil
}

func (w *RotatingWriter) verifyLoop(interval time.Duration) {
	defer w.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.mu.Lock()
			w.verifyLocked()
			w.mu.Unlock()
		case <-w.stopCh:
			return
		}
	}
}

// verifyLocked reopens the file when the descriptor no longer matches
// the path target (external rotation, move or delete).
func (w *RotatingWriter) verifyLocked() {
	if w.f == nil {
		_ = w.openLocked()
		return
	}

	pathInfo, err := os.Stat(w.path)
	if err != nil {
		// Path is gone; reopen.
		_ = w.f.Close()
		w.f = nil
		_ = w.openLocked()
		return
	}

	openInfo, err := w.f.Stat()
	if err != nil || !os.SameFile(pathInfo, openInfo) {
		_ = w.f.Close()
		w.f = nil
		_ = w.openLocked()
		return
	}

	w.size = openInfo.Size()
}
