package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdxtools/pdxsave/internal/testutil"
)

func TestParseGameDate(t *testing.T) {
	d, err := parseGameDate("1836.1.1")
	testutil.NoError(t, err)
	testutil.Equal(t, gameDate{1836, 1, 1}, d)

	// Header dates arrive still quoted.
	d, err = parseGameDate(`"1850.12.15"`)
	testutil.NoError(t, err)
	testutil.Equal(t, gameDate{1850, 12, 15}, d)

	for _, bad := range []string{"", "1836", "1836.1", "a.b.c", "1836.1.1.1"} {
		_, err := parseGameDate(bad)
		testutil.Error(t, err)
	}
}

func TestGameDateOrdering(t *testing.T) {
	testutil.True(t, gameDate{1836, 1, 1}.Less(gameDate{1836, 1, 2}))
	testutil.True(t, gameDate{1836, 12, 31}.Less(gameDate{1837, 1, 1}))
	testutil.True(t, gameDate{1836, 1, 31}.Less(gameDate{1836, 2, 1}))
	testutil.False(t, gameDate{1840, 5, 5}.Less(gameDate{1840, 5, 5}))
}

func TestFileDate(t *testing.T) {
	testutil.Equal(t, gameDate{1850, 6, 15}, fileDate("saves/1850.6.15.txt"))
	testutil.Equal(t, gameDate{1836, 1, 1}, fileDate("1836.1.1.v2"))
	// Unparseable names sort first rather than erroring.
	testutil.Equal(t, gameDate{}, fileDate("autosave.v2"))
}

func TestDiscoverSavesSortsByDate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1850.6.15.txt", "1836.1.1.txt", "1840.2.1.v2", "notes.md"} {
		testutil.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("date=\"x\"\n"), 0o644))
	}

	files, err := discoverSaves(dir)
	testutil.NoError(t, err)
	testutil.Len(t, files, 3)
	testutil.Equal(t, "1836.1.1.txt", filepath.Base(files[0]))
	testutil.Equal(t, "1840.2.1.v2", filepath.Base(files[1]))
	testutil.Equal(t, "1850.6.15.txt", filepath.Base(files[2]))
}

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "checkpoint.json")

	// Missing checkpoint means nothing processed yet.
	processed, err := loadCheckpoint(path)
	testutil.NoError(t, err)
	testutil.Equal(t, 0, len(processed))

	processed["1836.1.1"] = true
	processed["1836.2.1"] = true
	testutil.NoError(t, saveCheckpoint(path, processed))

	reloaded, err := loadCheckpoint(path)
	testutil.NoError(t, err)
	testutil.Equal(t, 2, len(reloaded))
	testutil.True(t, reloaded["1836.1.1"])
	testutil.True(t, reloaded["1836.2.1"])
}
