package files

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_StoreExistsDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "files")
	require.NoError(t, err)
	ctx := context.Background()

	loc, err := store.Store(ctx, "report.final.pdf", []byte("pdf"))
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^/files/report\.final-[0-9a-f]{8}\.pdf$`), loc)

	ok, err := store.Exists(ctx, loc)
	require.NoError(t, err)
	require.True(t, ok)

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(loc)))
	require.NoError(t, err)
	require.Equal(t, "pdf", string(data))

	require.NoError(t, store.Delete(ctx, loc))
	ok, err = store.Exists(ctx, loc)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting twice is fine.
	require.NoError(t, store.Delete(ctx, loc))
}

func TestLocalStore_UniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx := context.Background()

	a, err := store.Store(ctx, "notes", []byte("a"))
	require.NoError(t, err)
	b, err := store.Store(ctx, "notes", []byte("b"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.Regexp(t, regexp.MustCompile(`^/files/notes-[0-9a-f]{8}$`), a)
}

func TestLocalStore_RejectsForeignLocators(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx := context.Background()

	for _, loc := range []string{"/other/x.txt", "/files/../secret", "/files/", "/files/a/b.txt"} {
		err := store.Delete(ctx, loc)
		require.ErrorIs(t, err, ErrInvalidLocator, loc)
	}
}

func TestLocalStore_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/files")
	require.NoError(t, err)

	loc, err := store.Store(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^/files/passwd-[0-9a-f]{8}$`), loc)
	_, err = os.Stat(filepath.Join(dir, filepath.Base(loc)))
	require.NoError(t, err)
}

func TestLocalStore_Handler(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	loc, err := store.Store(context.Background(), "hello.txt", []byte("hello"))
	require.NoError(t, err)

	srv := httptest.NewServer(store.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + loc)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
