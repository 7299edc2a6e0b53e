package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/model"
)

// UploadBase is the file name (without extension) uploaded tables are
// stored under inside the upload directory.
const UploadBase = "source"

// UploadCandidates returns the paths an uploaded table may occupy, one per
// registered extension. They are meant to be checked before the configured
// candidates so a fresh upload takes precedence.
func UploadCandidates(dir string, readers *Registry) []string {
	if dir == "" {
		return nil
	}
	exts := readers.Extensions()
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = filepath.Join(dir, UploadBase+ext)
	}
	return out
}

// Store validates an uploaded table and installs it in dir as the upload
// candidate for its extension. The file is checked by loading it before it
// replaces any earlier upload, so a bad upload never shadows a good source.
func Store(ctx context.Context, loader *Loader, dir, name string, r io.Reader) (*model.RecordSet, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := loader.readers.For(name); !ok {
		return nil, eris.Errorf("source: unsupported upload type %q", ext)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "source: create upload dir")
	}

	tmp, err := os.CreateTemp(dir, ".upload-*"+ext)
	if err != nil {
		return nil, eris.Wrap(err, "source: create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, eris.Wrap(err, "source: write upload")
	}
	if err := tmp.Close(); err != nil {
		return nil, eris.Wrap(err, "source: close upload")
	}

	set, err := loader.LoadFile(ctx, tmpPath)
	if err != nil {
		return nil, eris.Wrap(err, "source: rejected upload")
	}

	for _, old := range UploadCandidates(dir, loader.readers) {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return nil, eris.Wrapf(err, "source: remove previous upload %s", old)
		}
	}
	dst := filepath.Join(dir, UploadBase+ext)
	if err := os.Rename(tmpPath, dst); err != nil {
		return nil, eris.Wrap(err, "source: install upload")
	}

	zap.L().Info("source upload stored",
		zap.String("name", name),
		zap.String("path", dst),
		zap.Int("records", set.Len()),
	)
	return set, nil
}
