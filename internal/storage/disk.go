package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Disk stores photo bytes as flat files under a base directory. The
// directory is served statically; stored names double as URL path segments,
// so they must never contain separators.
type Disk struct {
	baseDir string
}

// NewDisk creates the base directory if needed and returns a Disk store.
func NewDisk(baseDir string) (*Disk, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{baseDir: baseDir}, nil
}

// Save writes the reader's bytes to a new file named name and returns the
// byte count. Names are generated collision-resistant upstream; an existing
// file with the same name is an error, not something to overwrite.
func (d *Disk) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := os.OpenFile(filepath.Join(d.baseDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(d.baseDir, name))
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	return n, nil
}

// Remove deletes a stored file. Missing files are not an error so rollback
// can be retried safely.
func (d *Disk) Remove(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(d.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
