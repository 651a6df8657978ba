package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRead(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Append(dir, []Entry{
		{Timestamp: ts, Action: "save", Details: "data/save/finance_save.txt"},
	}))
	require.NoError(t, Append(dir, []Entry{
		{Timestamp: ts.Add(time.Minute), Action: "process", Details: "through 2024-03-01"},
	}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "save", entries[0].Action)
	assert.True(t, entries[0].Timestamp.Equal(ts))
	assert.Equal(t, "through 2024-03-01", entries[1].Details)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}
