package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Fallbacks(t *testing.T) {
	tbl := New()

	assert.Equal(t, "Total balance: ", tbl.Resolve("EN", "total_balance"))
	assert.Equal(t, "Total balance: ", tbl.Resolve("XX", "total_balance"), "unknown language falls back to EN")
	assert.Equal(t, "no_such_key", tbl.Resolve("EN", "no_such_key"), "missing key resolves to itself")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := "# Vietnamese\ntotal_balance = So du: \n\nextra_key=xin chao\nbroken line without equals\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vi.lang"), []byte(content), 0o644))

	tbl := New()
	require.NoError(t, tbl.LoadDir(dir))

	assert.Equal(t, "So du:", tbl.Resolve("VI", "total_balance"))
	assert.Equal(t, "xin chao", tbl.Resolve("vi", "extra_key"), "language codes are case-insensitive")
	// Keys absent from the locale fall through to EN.
	assert.Equal(t, "Category balances:", tbl.Resolve("VI", "category_balances"))
}

func TestLoadDir_MissingDirIsFine(t *testing.T) {
	tbl := New()
	assert.NoError(t, tbl.LoadDir(filepath.Join(t.TempDir(), "nope")))
}
