package chartstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stelliumhq/stellium/astro"
)

func testChart(name, birthDate string) *NatalChart {
	asc := astro.PositionFromLongitude(123.4)
	return &NatalChart{
		Name:          name,
		BirthDate:     birthDate,
		BirthTime:     "14:30:00",
		BirthLocation: "New York, NY",
		Latitude:      40.7128,
		Longitude:     -74.0060,
		Timezone:      "America/New_York",
		Planets: map[astro.Body]astro.ZodiacPosition{
			astro.Sun:  astro.PositionFromLongitude(255.1),
			astro.Moon: astro.PositionFromLongitude(12.8),
		},
		Placements: map[astro.Body]BodyPlacement{
			astro.Sun:  {Position: astro.PositionFromLongitude(255.1), House: 5},
			astro.Moon: {Position: astro.PositionFromLongitude(12.8), House: 9},
			astro.Mars: {Position: astro.PositionFromLongitude(201.2), House: 3, IsRetrograde: true},
		},
		Ascendant: &asc,
	}
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Load(filepath.Join(t.TempDir(), "charts.json"))
	require.NoError(t, err)
	return store
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.json")

	store, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(testChart("Ada", "1815-12-10")))

	// A fresh load from the same file sees an equal chart.
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count())

	chart, ok := reloaded.GetExact("Ada", "1815-12-10")
	require.True(t, ok)
	assert.Equal(t, testChart("Ada", "1815-12-10"), chart)
	assert.True(t, chart.Placements[astro.Mars].IsRetrograde)
}

func TestStore_LoadMissingFileIsEmpty(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "nonexistent", "charts.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Count())

	_, ok := store.Default()
	assert.False(t, ok)
}

func TestStore_LoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStore_CompositeKeyIsolation(t *testing.T) {
	store := tempStore(t)

	// Same name, different birth dates: two distinct charts.
	require.NoError(t, store.Save(testChart("Alex", "1990-05-01")))
	require.NoError(t, store.Save(testChart("Alex", "1985-11-23")))
	assert.Equal(t, 2, store.Count())

	first, ok := store.GetExact("Alex", "1990-05-01")
	require.True(t, ok)
	assert.Equal(t, "1990-05-01", first.BirthDate)

	second, ok := store.GetExact("Alex", "1985-11-23")
	require.True(t, ok)
	assert.Equal(t, "1985-11-23", second.BirthDate)

	// Deleting one leaves the other.
	removed, err := store.DeleteExact("Alex", "1990-05-01")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, store.Count())

	_, ok = store.GetExact("Alex", "1985-11-23")
	assert.True(t, ok)
}

func TestStore_SaveOverwritesSameKey(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(testChart("Ada", "1815-12-10")))

	updated := testChart("Ada", "1815-12-10")
	updated.BirthLocation = "London"
	require.NoError(t, store.Save(updated))

	assert.Equal(t, 1, store.Count(), "re-saving the same key must not duplicate")
	chart, ok := store.GetExact("Ada", "1815-12-10")
	require.True(t, ok)
	assert.Equal(t, "London", chart.BirthLocation)
}

func TestStore_GetByNameDeterministic(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(testChart("Alex", "1990-05-01")))
	require.NoError(t, store.Save(testChart("Alex", "1985-11-23")))

	// Ambiguous name resolves to the smallest key, every time.
	for i := 0; i < 10; i++ {
		chart, ok := store.GetByName("Alex")
		require.True(t, ok)
		assert.Equal(t, "1985-11-23", chart.BirthDate)
	}

	_, ok := store.GetByName("Nobody")
	assert.False(t, ok)
}

func TestStore_DefaultIsFirstInKeyOrder(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(testChart("Zara", "2001-01-01")))
	require.NoError(t, store.Save(testChart("Ada", "1815-12-10")))

	chart, ok := store.Default()
	require.True(t, ok)
	assert.Equal(t, "Ada", chart.Name)
}

func TestStore_ListAndSearch(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(testChart("Ada Lovelace", "1815-12-10")))
	require.NoError(t, store.Save(testChart("Alan Turing", "1912-06-23")))
	require.NoError(t, store.Save(testChart("Grace Hopper", "1906-12-09")))

	all := store.List()
	require.Len(t, all, 3)
	assert.Equal(t, "Ada Lovelace", all[0].Name)

	// Search is a case-insensitive substring match on the name.
	hits := store.Search("ADA")
	require.Len(t, hits, 1)
	assert.Equal(t, "Ada Lovelace", hits[0].Name)

	hits = store.Search("a")
	assert.Len(t, hits, 3)

	assert.Empty(t, store.Search("katherine"))
}

func TestStore_DeleteMissingDoesNotFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.json")
	store, err := Load(path)
	require.NoError(t, err)

	removed, err := store.DeleteExact("Nobody", "2000-01-01")
	require.NoError(t, err)
	assert.False(t, removed)

	// No mutation happened, so no file was written.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_FlushFailureKeepsMemoryState(t *testing.T) {
	dir := t.TempDir()
	store, err := Load(filepath.Join(dir, "charts.json"))
	require.NoError(t, err)

	// Make the backing path unwritable by turning it into a directory.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "charts.json"), 0o755))

	err = store.Save(testChart("Ada", "1815-12-10"))
	require.Error(t, err)

	// The in-memory write survives; readers already observed it.
	_, ok := store.GetExact("Ada", "1815-12-10")
	assert.True(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(testChart("Ada", "1815-12-10")))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.GetByName("Ada")
				store.List()
				store.Search("ada")
				store.Count()
				store.Default()
			}
		}()
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if n == 0 {
					_ = store.Save(testChart("Alan", "1912-06-23"))
				} else {
					_, _ = store.DeleteExact("Alan", "1912-06-23")
				}
			}
		}(i)
	}
	wg.Wait()

	_, ok := store.GetExact("Ada", "1815-12-10")
	assert.True(t, ok)
}

func TestNatalChart_Key(t *testing.T) {
	chart := testChart("Ada", "1815-12-10")
	assert.Equal(t, "Ada_1815-12-10", chart.Key())
}

func TestNatalChart_HouseOf(t *testing.T) {
	chart := testChart("Ada", "1815-12-10")
	assert.Equal(t, 5, chart.HouseOf(astro.Sun))
	assert.Equal(t, 0, chart.HouseOf(astro.Neptune))
}
