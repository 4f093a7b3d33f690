package filerepo_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jrsteele09/go-taskassign/credentials"
	"github.com/jrsteele09/go-taskassign/credentials/filerepo"
	errs "github.com/jrsteele09/go-taskassign/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestStoreGetRoundTrip(t *testing.T) {
	repo, err := filerepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Store("abc"))
	token, err := repo.Get()
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	// Store overwrites
	require.NoError(t, repo.Store("def"))
	token, err = repo.Get()
	require.NoError(t, err)
	require.Equal(t, "def", token)
}

func TestGetWhenNeverSet(t *testing.T) {
	repo, err := filerepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	token, err := repo.Get()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestClearIsIdempotent(t *testing.T) {
	repo, err := filerepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Clear()) // clearing an absent token is not an error

	require.NoError(t, repo.Store("abc"))
	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())

	token, err := repo.Get()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestTokenSurvivesReopen(t *testing.T) {
	dataFolder := t.TempDir()

	repo, err := filerepo.NewFileRepo(dataFolder)
	require.NoError(t, err)
	require.NoError(t, repo.Store("persisted"))

	reopened, err := filerepo.NewFileRepo(dataFolder)
	require.NoError(t, err)
	token, err := reopened.Get()
	require.NoError(t, err)
	require.Equal(t, "persisted", token)
}

func TestTokenFilePermissions(t *testing.T) {
	dataFolder := t.TempDir()
	repo, err := filerepo.NewFileRepo(dataFolder)
	require.NoError(t, err)
	require.NoError(t, repo.Store("secret"))

	info, err := os.Stat(filepath.Join(dataFolder, credentials.TokenKey))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// Two writers racing must never leave a torn value: the final token is
// exactly one of the two, byte for byte.
func TestConcurrentStoresNeverTear(t *testing.T) {
	repo, err := filerepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	tokenA := "token-a-0123456789"
	tokenB := "token-b-9876543210"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			require.NoError(t, repo.Store(tokenA))
		}()
		go func() {
			defer wg.Done()
			require.NoError(t, repo.Store(tokenB))
		}()
	}
	wg.Wait()

	token, err := repo.Get()
	require.NoError(t, err)
	require.Contains(t, []string{tokenA, tokenB}, token)
}

func TestStorageFaultsAreClassified(t *testing.T) {
	parent := t.TempDir()

	// The data folder path exists as a regular file, so every write fails.
	blocked := filepath.Join(parent, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("in the way"), 0o600))

	repo, err := filerepo.NewFileRepo(blocked)
	require.NoError(t, err)

	err = repo.Store("abc")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrStorage)
}

func TestNewFileRepoRequiresFolder(t *testing.T) {
	_, err := filerepo.NewFileRepo("")
	require.Error(t, err)
}
