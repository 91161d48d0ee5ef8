package save

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/mcweebus/quietcurrent/internal/game"
)

// FileStore keeps the settlement as indented JSON, with zstd copies of
// earlier saves beside it as path.1.zst, path.2.zst and so on.
type FileStore struct {
	Path    string
	Backups int

	now func() time.Time
}

func NewFileStore(path string, backups int) *FileStore {
	if backups < 0 {
		backups = 0
	}
	return &FileStore{Path: path, Backups: backups, now: time.Now}
}

func (s *FileStore) Load() (*game.World, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	return decode(data)
}

func (s *FileStore) Save(w *game.World) error {
	data, err := encode(w, s.now())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating save dir: %w", err)
		}
	}
	if err := s.rotate(); err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing save: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) backupPath(n int) string {
	return fmt.Sprintf("%s.%d.zst", s.Path, n)
}

// rotate shifts the compressed copies down one slot and compresses the
// current save into slot 1.
func (s *FileStore) rotate() error {
	if s.Backups == 0 {
		return nil
	}
	current, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading save for backup: %w", err)
	}
	_ = os.Remove(s.backupPath(s.Backups))
	for n := s.Backups - 1; n >= 1; n-- {
		if err := os.Rename(s.backupPath(n), s.backupPath(n+1)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rotating backups: %w", err)
		}
	}
	return writeCompressed(s.backupPath(1), current)
}

// ListBackups lists the backup slots present on disk, newest first.
func (s *FileStore) ListBackups() []int {
	var out []int
	for n := 1; n <= s.Backups; n++ {
		if _, err := os.Stat(s.backupPath(n)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// RestoreBackup decodes backup slot n without touching the live save.
func (s *FileStore) RestoreBackup(n int) (*game.World, error) {
	data, err := readCompressed(s.backupPath(n))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func writeCompressed(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	if _, err := bw.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	return enc.Close()
}

func readCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(bufio.NewReader(dec))
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	return data, nil
}
