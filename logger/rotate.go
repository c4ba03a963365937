package logger

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DailyRotatingWriter appends to <dir>/<prefix><yyyy-mm-dd><suffix>, opening a
// new file when the date changes and keeping only the newest Keep files.
type DailyRotatingWriter struct {
	Dir    string
	Prefix string
	Suffix string
	Keep   int

	mu          sync.Mutex
	currentDate string
	file        *os.File
}

func NewDailyRotatingWriter(dir, prefix, suffix string, keep int) (*DailyRotatingWriter, error) {
	w := &DailyRotatingWriter{
		Dir:    dir,
		Prefix: prefix,
		Suffix: suffix,
		Keep:   keep,
	}
	if err := w.rotateIfNeeded(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *DailyRotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

func (w *DailyRotatingWriter) rotateIfNeeded() error {
	today := time.Now().Format("2006-01-02")
	if w.currentDate == today && w.file != nil {
		return nil
	}

	if w.file != nil {
		w.file.Close()
	}

	file, err := os.OpenFile(
		filepath.Join(w.Dir, w.Prefix+today+w.Suffix),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return err
	}

	w.file = file
	w.currentDate = today

	w.cleanup()

	return nil
}

func (w *DailyRotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}

var _ io.WriteCloser = (*DailyRotatingWriter)(nil)

// cleanup relies on the date in the file name sorting chronologically.
func (w *DailyRotatingWriter) cleanup() {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, w.Prefix) && strings.HasSuffix(name, w.Suffix) {
			files = append(files, name)
		}
	}

	if w.Keep <= 0 || len(files) <= w.Keep {
		return
	}

	sort.Strings(files)

	for i := 0; i < len(files)-w.Keep; i++ {
		os.Remove(filepath.Join(w.Dir, files[i]))
	}
}
