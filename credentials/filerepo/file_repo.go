package filerepo

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-taskassign/credentials"
	errs "github.com/jrsteele09/go-taskassign/internal/errors"
	"github.com/pkg/errors"
)

var _ credentials.Repo = (*FileRepo)(nil)

// FileRepo persists the auth token in a single file under the data folder,
// surviving process restarts. Writes go through a temp file and rename so a
// crash mid-write never leaves a torn token on disk.
type FileRepo struct {
	path string
	lock sync.Mutex
}

// NewFileRepo creates a file-backed credential store rooted at dataFolder.
func NewFileRepo(dataFolder string) (*FileRepo, error) {
	if dataFolder == "" {
		return nil, errors.New("[NewFileRepo] dataFolder is required")
	}
	return &FileRepo{path: filepath.Join(dataFolder, credentials.TokenKey)}, nil
}

func (fr *FileRepo) Store(token string) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(fr.path), 0o700); err != nil {
		return errs.Wrapf(errs.ErrStorage, "[FileRepo.Store] create data folder: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fr.path), credentials.TokenKey+".*")
	if err != nil {
		return errs.Wrapf(errs.ErrStorage, "[FileRepo.Store] create temp file: %v", err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, token); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrapf(errs.ErrStorage, "[FileRepo.Store] write token: %v", err)
	}
	if err := os.Rename(tmpName, fr.path); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrapf(errs.ErrStorage, "[FileRepo.Store] rename: %v", err)
	}
	return nil
}

func (fr *FileRepo) Get() (string, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	data, err := os.ReadFile(fr.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errs.Wrapf(errs.ErrStorage, "[FileRepo.Get] read token: %v", err)
	}
	return string(data), nil
}

func (fr *FileRepo) Clear() error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if err := os.Remove(fr.path); err != nil && !os.IsNotExist(err) {
		return errs.Wrapf(errs.ErrStorage, "[FileRepo.Clear] remove token: %v", err)
	}
	return nil
}

func writeAndClose(f *os.File, token string) error {
	defer f.Close()
	if err := f.Chmod(0o600); err != nil {
		return err
	}
	if _, err := f.WriteString(token); err != nil {
		return err
	}
	return f.Sync()
}
