// Package artifact lands finished build documents, locally and optionally
// in an S3 bucket for the site to pick up.
package artifact

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Writer writes artifacts into the output directory. Documents go through
// a temp file and a rename, so an interrupted build never leaves a torn
// artifact where a complete one is expected.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output dir %s", dir)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string {
	return w.dir
}

// WriteJSON marshals doc and writes it under name, returning the artifact
// size in bytes.
func (w *Writer) WriteJSON(name string, doc any) (int, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to marshal artifact %s", name)
	}

	tmp, err := os.CreateTemp(w.dir, name+".tmp-*")
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create temp file for artifact %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return 0, errors.Wrapf(err, "failed to write artifact %s", name)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to close artifact %s", name)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(w.dir, name)); err != nil {
		return 0, errors.Wrapf(err, "failed to move artifact %s into place", name)
	}

	return len(b), nil
}
