// Package source finds, reads and normalizes the inspection table, and holds
// the loaded record set for the life of the process.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/normalize"
)

// Loader tries an ordered list of candidate files and returns the first one
// that can be read and normalized.
type Loader struct {
	candidates []string
	readers    *Registry
	normalizer *normalize.Normalizer

	mu       sync.Mutex
	rejected map[string]string // path -> fingerprint of candidates the last Load skipped
}

// NewLoader creates a Loader over the given candidate paths.
func NewLoader(candidates []string, readers *Registry, n *normalize.Normalizer) *Loader {
	return &Loader{candidates: candidates, readers: readers, normalizer: n}
}

// Candidates returns the candidate paths in lookup order.
func (l *Loader) Candidates() []string {
	out := make([]string, len(l.candidates))
	copy(out, l.candidates)
	return out
}

// Load returns the record set from the first usable candidate. When every
// candidate fails the error is an *UnavailableError.
func (l *Loader) Load(ctx context.Context) (*model.RecordSet, error) {
	var attempts []Attempt
	rejected := make(map[string]string)
	defer func() {
		l.mu.Lock()
		l.rejected = rejected
		l.mu.Unlock()
	}()

	for _, path := range l.candidates {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "source: context cancelled")
		}
		set, err := l.LoadFile(ctx, path)
		if err != nil {
			zap.L().Debug("source candidate skipped", zap.String("path", path), zap.Error(err))
			attempts = append(attempts, Attempt{Path: path, Err: err})
			if fp, fpErr := Fingerprint(path); fpErr == nil {
				rejected[path] = fp
			}
			continue
		}
		zap.L().Info("source loaded",
			zap.String("path", path),
			zap.Int("records", set.Len()),
			zap.String("version", set.Version()),
		)
		return set, nil
	}
	return nil, &UnavailableError{Attempts: attempts}
}

// LoadFile reads and normalizes a single file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*model.RecordSet, error) {
	reader, ok := l.readers.For(path)
	if !ok {
		return nil, eris.Errorf("source: no reader for %s", path)
	}
	version, err := Fingerprint(path)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	table.Name = path
	return l.normalizer.Normalize(table, version)
}

// Peek returns the path and fingerprint of the first candidate Load would
// pick, without parsing: one that exists, has a registered reader and is
// not a file the last Load rejected and that is still unchanged.
func (l *Loader) Peek(_ context.Context) (string, string, error) {
	l.mu.Lock()
	rejected := l.rejected
	l.mu.Unlock()

	for _, path := range l.candidates {
		if _, ok := l.readers.For(path); !ok {
			continue
		}
		version, err := Fingerprint(path)
		if err != nil {
			continue
		}
		if fp, ok := rejected[path]; ok && fp == version {
			continue
		}
		return path, version, nil
	}
	return "", "", &UnavailableError{}
}

// Fingerprint hashes the file contents. Two reads of an unchanged file give
// the same fingerprint regardless of modification time.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrap(err, "source: open")
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", eris.Wrap(err, "source: hash")
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
