// Package store persists the hunter and quest list to a single save file
// under the user's home directory.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rcliao/hunter-protocol/internal/codec"
	"github.com/rcliao/hunter-protocol/internal/model"
)

const (
	DirName      = ".hunter-protocol"
	FileName     = "save.dat"
	BackupSuffix = ".bak"
)

// ResolvePath returns <home>/.hunter-protocol/save.dat. It touches no files.
func ResolvePath(home string) (string, error) {
	if home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, DirName, FileName), nil
}

// FileStore reads and writes one save file. It assumes a single process.
type FileStore struct {
	dir  string
	path string
	log  *zap.Logger
}

// New returns a store rooted at home. A nil logger discards output.
func New(home string, log *zap.Logger) (*FileStore, error) {
	path, err := ResolvePath(home)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: filepath.Dir(path), path: path, log: log}, nil
}

// Path returns the save file path.
func (s *FileStore) Path() string { return s.path }

// BackupPath returns the path the previous save is rotated to.
func (s *FileStore) BackupPath() string { return s.path + BackupSuffix }

// Dir returns the save directory.
func (s *FileStore) Dir() string { return s.dir }

// Init makes sure the save directory exists.
func (s *FileStore) Init() error {
	info, err := os.Stat(s.dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s is not a directory: %w", s.dir, ErrMkdir)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrMkdir, err)
	}
	return nil
}

// Exists reports whether a regular save file is present.
func (s *FileStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Write encodes st and replaces the save file. An existing save is first
// renamed to the backup path; that rename is best-effort and its failure
// does not stop the write.
func (s *FileStore) Write(st *model.State) error {
	data, err := codec.Encode(st)
	if err != nil {
		return err
	}

	if s.Exists() {
		if err := os.Rename(s.path, s.BackupPath()); err != nil {
			s.log.Warn("backup save file", zap.String("path", s.path), zap.Error(err))
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	s.log.Debug("saved",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
		zap.Int("quests", st.Quests.Len()))
	return nil
}

// Read loads and validates the save file.
func (s *FileStore) Read() (*model.State, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	st, err := codec.Decode(data)
	if errors.Is(err, codec.ErrTruncated) {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes the save file. The backup is left in place.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return nil
}

// Info describes the files on disk.
type Info struct {
	Path         string `json:"path"`
	Exists       bool   `json:"exists"`
	SizeBytes    int64  `json:"size_bytes"`
	BackupPath   string `json:"backup_path"`
	BackupExists bool   `json:"backup_exists"`
}

// Info reports the save and backup paths and sizes.
func (s *FileStore) Info() Info {
	info := Info{Path: s.path, BackupPath: s.BackupPath()}
	if fi, err := os.Stat(s.path); err == nil {
		info.Exists = fi.Mode().IsRegular()
		info.SizeBytes = fi.Size()
	}
	if _, err := os.Stat(info.BackupPath); err == nil {
		info.BackupExists = true
	}
	return info
}
